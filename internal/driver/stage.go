// Package driver wires every compiler stage (lexer through IR
// generator) into one pipeline a CLI command or test fixture can
// invoke up to an arbitrary cutoff, mirroring
// original_source/joosc.{h,cpp}'s CompilerStage/CompilerMain split.
package driver

import "fmt"

// Stage names a point to stop the pipeline at. Each later constant
// implicitly includes every prior one — running to StageTypeCheck
// also lexes, parses, and weeds first — exactly the comment on
// original_source/joosc.h's CompilerStage enum.
type Stage int

const (
	StageOpenFiles Stage = iota
	StageLex
	StageParse
	StageWeed
	StageTypeCheck
	StageGenIR
	StageAll
)

func (s Stage) String() string {
	switch s {
	case StageOpenFiles:
		return "open-files"
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	case StageWeed:
		return "weed"
	case StageTypeCheck:
		return "type-check"
	case StageGenIR:
		return "gen-ir"
	case StageAll:
		return "all"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// ParseStage resolves the --until flag's textual form. Unrecognized
// names are reported by the caller, not here, since the CLI diagnostic
// should name the bad flag value, which ParseStage doesn't have.
func ParseStage(name string) (Stage, bool) {
	switch name {
	case "open-files":
		return StageOpenFiles, true
	case "lex":
		return StageLex, true
	case "parse":
		return StageParse, true
	case "weed":
		return StageWeed, true
	case "type-check":
		return StageTypeCheck, true
	case "gen-ir":
		return StageGenIR, true
	case "all":
		return StageAll, true
	default:
		return 0, false
	}
}
