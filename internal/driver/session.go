package driver

import (
	"fmt"
	"os"

	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/constfold"
	"github.com/joosc/compiler/internal/dataflow"
	"github.com/joosc/compiler/internal/declresolver"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/ir"
	"github.com/joosc/compiler/internal/lexer"
	"github.com/joosc/compiler/internal/parser"
	"github.com/joosc/compiler/internal/runtimesynth"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typecheck"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typeset"
	"github.com/joosc/compiler/internal/weeder"
)

// Session owns the one FileSet a compile's stages share (spec.md §5's
// single mutable structure) plus the two error channels spec.md §6
// keeps separate: Diags for the semantic core (weeder through IR
// generation), and SyntaxErrors for the lexer/parser, which are
// external collaborators with their own unstructured error type
// (internal/lexer.Error, internal/parser.Error) rather than a
// diagnostics.Kind.
type Session struct {
	FS           *token.FileSet
	Diags        diagnostics.List
	SyntaxErrors []error
}

// NewSession returns an empty, ready-to-run Session.
func NewSession() *Session {
	return &Session{FS: token.NewFileSet()}
}

// Result carries whatever the pipeline built on the way to the
// requested Stage — later fields are zero when stage stopped early.
type Result struct {
	Stage   Stage
	Tokens  [][]token.Token        // one slice per input file, runtime files first, valid from StageLex on
	Program *ast.Program           // valid from StageParse on
	Types   typeinfo.TypeInfoMap   // valid from StageTypeCheck on
	IR      ir.Program             // valid only at StageGenIR/StageAll
}

// Run opens paths from disk, prepends the synthesized runtime support
// library (internal/runtimesynth), and drives the pipeline up to and
// including stage. It reports whether the compile succeeded: false
// with a non-nil error means a file could not be opened; false with a
// nil error means some stage recorded a syntax or semantic error
// (check s.SyntaxErrors / s.Diags).
func (s *Session) Run(stage Stage, paths []string) (Result, bool, error) {
	userFiles, err := s.openFiles(paths)
	if err != nil {
		return Result{Stage: StageOpenFiles}, false, err
	}
	if stage == StageOpenFiles {
		return Result{Stage: StageOpenFiles}, true, nil
	}

	files := append(runtimeFiles(s.FS), userFiles...)

	if stage == StageLex {
		tokens := s.lexAll(files)
		return Result{Stage: StageLex, Tokens: tokens}, len(s.SyntaxErrors) == 0, nil
	}

	prog := s.parseAll(files)
	if len(s.SyntaxErrors) > 0 || stage == StageParse {
		return Result{Stage: StageParse, Program: prog}, len(s.SyntaxErrors) == 0, nil
	}

	prog = weeder.Weed(s.FS, prog, &s.Diags)
	if s.Diags.HasErrors() || stage == StageWeed {
		return Result{Stage: StageWeed, Program: prog}, !s.Diags.HasErrors(), nil
	}

	prog, tim, irProg, ok := s.typeCheckAndGenerate(prog)
	if stage == StageTypeCheck {
		return Result{Stage: StageTypeCheck, Program: prog, Types: tim}, ok, nil
	}
	return Result{Stage: StageGenIR, Program: prog, Types: tim, IR: irProg}, ok, nil
}

type openFile struct {
	id      token.FileID
	name    string
	content []byte
}

// openFiles reads every path from disk and registers it in s.FS. This
// is the one part of a Run that can fail outside both error channels —
// a missing file is an operator mistake, not a compile error, matching
// CompilerMain's FileSet::Builder::Build split in
// original_source/joosc.cpp.
func (s *Session) openFiles(paths []string) ([]openFile, error) {
	files := make([]openFile, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		id := s.FS.AddFile(path, content)
		files = append(files, openFile{id: id, name: path, content: content})
	}
	return files, nil
}

// runtimeFiles registers internal/runtimesynth's Joos source strings
// in fs and returns them in the same openFile shape as a user file, so
// the rest of the pipeline never distinguishes synthesized source from
// disk source.
func runtimeFiles(fs *token.FileSet) []openFile {
	synth := runtimesynth.Files()
	files := make([]openFile, 0, len(synth))
	for _, f := range synth {
		content := []byte(f.Content)
		id := fs.AddFile(f.Name, content)
		files = append(files, openFile{id: id, name: f.Name, content: content})
	}
	return files
}

// lexAll is only reached by a bare --until lex: every later stage
// parses instead, since parser.New already lexes internally and folds
// lexer errors into its own error list (parser.go's doc comment).
func (s *Session) lexAll(files []openFile) [][]token.Token {
	tokens := make([][]token.Token, len(files))
	for i, f := range files {
		l := lexer.New(f.id, f.content)
		var toks []token.Token
		for {
			tok := l.NextToken()
			toks = append(toks, tok)
			if tok.Type == token.EOF {
				break
			}
		}
		tokens[i] = toks
		for _, lexErr := range l.Errors() {
			s.SyntaxErrors = append(s.SyntaxErrors, lexErr)
		}
	}
	return tokens
}

func (s *Session) parseAll(files []openFile) *ast.Program {
	prog := &ast.Program{}
	for _, f := range files {
		p := parser.New(f.id, f.content)
		cu := p.ParseCompilationUnit()
		for _, perr := range p.Errors() {
			s.SyntaxErrors = append(s.SyntaxErrors, perr)
		}
		prog.Units = append(prog.Units, cu)
	}
	return prog
}

// typeCheckAndGenerate runs every remaining stage (typeset build,
// decl resolution, type-info build, type checking, constant folding,
// dataflow, IR generation) in the fixed order spec.md §2 lays out.
// Within a stage, errors accumulate in s.Diags without stopping it, but
// the function returns early, with false and an empty ir.Program, once
// s.Diags has entries after the type-info build, after type checking,
// or after dataflow; the caller only trusts the returned ir.Program
// when the returned bool is true.
func (s *Session) typeCheckAndGenerate(prog *ast.Program) (*ast.Program, typeinfo.TypeInfoMap, ir.Program, bool) {
	tb := typeset.NewBuilder()
	declresolver.CollectTypeNames(prog, tb)
	ts := tb.Build(&s.Diags)

	objectType := ts.Get([]string{"java", "lang", "Object"}, token.Range{}, nil)
	arrayType := ts.Get([]string{"__joos_internal__", "Array"}, token.Range{}, nil)
	stringType := ts.Get([]string{"java", "lang", "String"}, token.Range{}, nil)

	tib := typeinfo.NewBuilder(objectType, arrayType)
	r := declresolver.New(ts, tib, &s.Diags)
	prog = r.Resolve(prog)
	tim := tib.Build(&s.Diags)

	if s.Diags.HasErrors() {
		return prog, tim, ir.Program{}, false
	}

	c := typecheck.New(ts, tim, arrayType, stringType, &s.Diags)
	prog = c.Check(prog)
	if s.Diags.HasErrors() {
		return prog, tim, ir.Program{}, false
	}

	strings := constfold.NewConstStringMap()
	prog = constfold.New(stringType, strings).Fold(prog)

	dataflow.New(tim, &s.Diags).Check(prog)
	if s.Diags.HasErrors() {
		return prog, tim, ir.Program{}, false
	}

	rt := ir.LookupRuntimeIds(ts, tim)
	irProg := ir.NewGenerator(tim, strings, rt).Generate(prog)
	return prog, tim, irProg, true
}
