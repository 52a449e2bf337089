package ast

import (
	"fmt"
	"strings"
)

// Print returns a tree-like string representation of the AST for debugging
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *Program:
		sb.WriteString(fmt.Sprintf("%sProgram (%d patterns, %d scenes)\n", prefix, len(n.Patterns), len(n.Scenes)))
		for _, stmt := range n.Body {
			printNode(sb, stmt, indent+1)
		}

	case *Title:
		sb.WriteString(fmt.Sprintf("%sTitle: %q\n", prefix, n.Value))

	case *Tempo:
		sb.WriteString(fmt.Sprintf("%sTempo: %d\n", prefix, n.Value))

	case *Swing:
		sb.WriteString(fmt.Sprintf("%sSwing: %d\n", prefix, n.Value))

	case *Pattern:
		sb.WriteString(fmt.Sprintf("%sPattern: %s %q\n", prefix, n.Name, n.Data))
		sb.WriteString(fmt.Sprintf("%s  Steps: %v\n", prefix, n.Steps))

	case *Scene:
		sb.WriteString(fmt.Sprintf("%sScene: %s\n", prefix, n.Name))
		if len(n.Assignments) == 0 {
			sb.WriteString(fmt.Sprintf("%s  Assignments: none\n", prefix))
		}
		for _, a := range n.Assignments {
			printNode(sb, a, indent+1)
		}

	case *Assignment:
		sb.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, n.Voice, n.Pattern))

	case *VoiceAssign:
		sb.WriteString(fmt.Sprintf("%sVoiceAssign: %s: %s\n", prefix, n.Voice, n.Pattern))

	case *Play:
		scene := n.Scene
		if scene == "" {
			scene = "-"
		}
		loop := ""
		if n.Loop {
			loop = " (loop)"
		}
		sb.WriteString(fmt.Sprintf("%sPlay: %s%s\n", prefix, scene, loop))

	case *Stop:
		sb.WriteString(fmt.Sprintf("%sStop\n", prefix))

	case *Param:
		sb.WriteString(fmt.Sprintf("%sParam: %s.%s = %d\n", prefix, n.Voice, n.Param, n.Value))

	case *Poke:
		sb.WriteString(fmt.Sprintf("%sPoke: $%04X = %d\n", prefix, n.Addr, n.Value))

	case *Loop:
		sb.WriteString(fmt.Sprintf("%sLoop: %d\n", prefix, n.Count))

	case *Wait:
		sb.WriteString(fmt.Sprintf("%sWait: %d\n", prefix, n.Steps))

	case *Comment:
		sb.WriteString(fmt.Sprintf("%sComment: %s\n", prefix, n.Text))

	default:
		sb.WriteString(fmt.Sprintf("%s<unknown node %T>\n", prefix, node))
	}
}
