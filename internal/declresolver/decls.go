package declresolver

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/typeinfo"
	"github.com/joosc/compiler/internal/typeset"
	"github.com/joosc/compiler/internal/typesys"
)

func (r *Resolver) resolveType(td *ast.TypeDecl, pkg ast.QualifiedName, scoped typeset.TypeSet) *ast.TypeDecl {
	tid := r.ts.Get(fullName(pkg, td.Name), td.NameRange, nil)
	if !tid.IsValid() {
		// Only reachable if typeset.Builder never saw this declaration,
		// which would mean the TypeSet build stage and this resolver
		// disagree about what the program's types are; treat it as
		// already-reported rather than silently assigning a fresh id.
		tid = typesys.ErrorType
	}

	extends := r.resolveEdges(scoped, td.Extends)
	implements := r.resolveEdges(scoped, td.Implements)

	v := r.typeRefVisitor(scoped)

	fields := make([]*ast.FieldDecl, len(td.Fields))
	for i, f := range td.Fields {
		fields[i] = r.resolveField(f, tid, scoped, v)
	}

	methods := make([]*ast.MethodDecl, len(td.Methods))
	for i, m := range td.Methods {
		methods[i] = r.resolveMethod(m, tid, scoped, v)
	}

	ctors := make([]*ast.MethodDecl, len(td.Constructors))
	for i, c := range td.Constructors {
		ctors[i] = r.resolveMethod(c, tid, scoped, v)
	}

	ntd := *td
	ntd.TypeID = tid
	ntd.Package = pkg
	ntd.Fields = fields
	ntd.Methods = methods
	ntd.Constructors = ctors

	r.tib.PutType(tid, td.Modifiers, td.Kind, td.Name, pkg.String(), td.NameRange, extends, implements)

	return &ntd
}

func (r *Resolver) resolveEdges(scoped typeset.TypeSet, names []ast.QualifiedName) []typeinfo.EdgeRef {
	if len(names) == 0 {
		return nil
	}
	out := make([]typeinfo.EdgeRef, len(names))
	for i, n := range names {
		out[i] = typeinfo.EdgeRef{Type: r.resolveName(scoped, n), Range: n.Range}
	}
	return out
}

func (r *Resolver) resolveField(f *ast.FieldDecl, owner typesys.TypeId, scoped typeset.TypeSet, v *ast.Visitor) *ast.FieldDecl {
	nf := *f
	nf.Type = r.resolveTypeRefNode(f.Type, scoped)
	nf.OwnerType = owner
	if f.Init != nil {
		nf.Init = ast.RewriteExpr(f.Init, v)
	}

	r.tib.PutField(owner, nf.Type.Resolved, f.Modifiers, f.Name, f.Range)
	return &nf
}

func (r *Resolver) resolveMethod(m *ast.MethodDecl, owner typesys.TypeId, scoped typeset.TypeSet, v *ast.Visitor) *ast.MethodDecl {
	nm := *m
	nm.OwnerType = owner

	rettid := typesys.Void
	if !m.IsConstructor {
		nm.ReturnType = r.resolveTypeRefNode(m.ReturnType, scoped)
		rettid = nm.ReturnType.Resolved
	}

	params := make([]*ast.Param, len(m.Params))
	paramTids := make([]typesys.TypeId, len(m.Params))
	for i, p := range m.Params {
		np := *p
		np.Type = r.resolveTypeRefNode(p.Type, scoped)
		params[i] = &np
		paramTids[i] = np.Type.Resolved
	}
	nm.Params = params

	if m.Body != nil {
		nm.Body = ast.RewriteStmt(m.Body, v).(*ast.Block)
	}

	r.tib.PutMethod(owner, rettid, paramTids, m.Modifiers, m.Name, m.Range, m.IsConstructor, m.Body != nil)
	return &nm
}

func fullName(pkg ast.QualifiedName, name string) []string {
	if len(pkg.Parts) == 0 {
		return []string{name}
	}
	out := make([]string, len(pkg.Parts)+1)
	copy(out, pkg.Parts)
	out[len(pkg.Parts)] = name
	return out
}
