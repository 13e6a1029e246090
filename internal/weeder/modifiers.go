package weeder

import (
	"github.com/joosc/compiler/internal/ast"
	"github.com/joosc/compiler/internal/diagnostics"
	"github.com/joosc/compiler/internal/token"
	"github.com/joosc/compiler/internal/typesys"
)

// checkModifiers validates every class/interface/field/method/constructor
// modifier combination, grounded on weeder/modifier_visitor.cpp's
// ClassModifierVisitor/InterfaceModifierVisitor/ModifierVisitor split.
func checkModifiers(prog *ast.Program, out *diagnostics.List) {
	for _, unit := range prog.Units {
		for _, t := range unit.Types {
			checkTypeModifiers(t, out)
		}
	}
}

func checkTypeModifiers(t *ast.TypeDecl, out *diagnostics.List) {
	switch t.Kind {
	case typesys.Class:
		if t.Modifiers.Has(ast.ModProtected) || t.Modifiers.Has(ast.ModStatic) || t.Modifiers.Has(ast.ModNative) {
			out.Addf(diagnostics.ClassModifierError, t.NameRange, "a class cannot be protected, static, or native")
		}
		if !t.Modifiers.IsPublic() {
			out.Addf(diagnostics.ClassNoAccessModError, t.NameRange, "a class must be public")
		}
		if t.Modifiers.IsAbstract() && t.Modifiers.IsFinal() {
			out.Addf(diagnostics.AbstractFinalClass, t.NameRange, "a class cannot be both abstract and final")
		}
		for _, f := range t.Fields {
			checkClassFieldModifiers(f, out)
		}
		for _, m := range t.Methods {
			checkClassMethodModifiers(m, out)
		}
		for _, c := range t.Constructors {
			checkClassConstructorModifiers(c, out)
		}
	case typesys.Interface:
		if t.Modifiers.Has(ast.ModProtected) || t.Modifiers.Has(ast.ModStatic) || t.Modifiers.Has(ast.ModFinal) || t.Modifiers.Has(ast.ModNative) {
			out.Addf(diagnostics.InterfaceModifierError, t.NameRange, "an interface cannot be protected, static, final, or native")
		}
		if !t.Modifiers.IsPublic() {
			out.Addf(diagnostics.InterfaceNoAccessModError, t.NameRange, "an interface must be public")
		}
		for _, f := range t.Fields {
			out.Addf(diagnostics.InterfaceFieldError, f.NameRange, "an interface cannot contain any fields")
		}
		for _, m := range t.Methods {
			checkInterfaceMethodModifiers(m, out)
		}
	}
}

func checkClassFieldModifiers(f *ast.FieldDecl, out *diagnostics.List) {
	verifyAccessModConflict(f.Modifiers, f.NameRange, out)
	if !f.Modifiers.IsPublic() && !f.Modifiers.IsProtected() {
		out.Addf(diagnostics.ClassMemberNoAccessModError, f.NameRange, "a class member must be either public or protected")
	}
	if f.Modifiers.Has(ast.ModAbstract) || f.Modifiers.Has(ast.ModFinal) || f.Modifiers.Has(ast.ModNative) {
		out.Addf(diagnostics.ClassFieldModifierError, f.NameRange, "a class field cannot be abstract, final, or native")
	}
}

func checkClassMethodModifiers(m *ast.MethodDecl, out *diagnostics.List) {
	verifyAccessModConflict(m.Modifiers, m.NameRange, out)
	if !m.Modifiers.IsPublic() && !m.Modifiers.IsProtected() {
		out.Addf(diagnostics.ClassMemberNoAccessModError, m.NameRange, "a class member must be either public or protected")
	}

	hasBody := m.Body != nil
	if !hasBody {
		if !m.Modifiers.IsAbstract() && !m.Modifiers.Has(ast.ModNative) {
			out.Addf(diagnostics.ClassMethodEmptyError, m.NameRange, "a method must be native or abstract to have an empty body")
		}
	} else {
		if m.Modifiers.IsAbstract() || m.Modifiers.Has(ast.ModNative) {
			out.Addf(diagnostics.ClassMethodNotEmptyError, m.NameRange, "a native or abstract method must not have a body")
		}
	}

	if m.Modifiers.IsAbstract() {
		if m.Modifiers.IsStatic() || m.Modifiers.IsFinal() {
			out.Addf(diagnostics.ClassMethodAbstractModifierError, m.NameRange, "an abstract method cannot be static or final")
		}
	}
	if m.Modifiers.IsStatic() && m.Modifiers.IsFinal() {
		out.Addf(diagnostics.ClassMethodStaticFinalError, m.NameRange, "a static method cannot be final")
	}
	if m.Modifiers.Has(ast.ModNative) && !m.Modifiers.IsStatic() {
		out.Addf(diagnostics.ClassMethodNativeNotStaticError, m.NameRange, "a native method must be static")
	}
}

func checkClassConstructorModifiers(c *ast.MethodDecl, out *diagnostics.List) {
	verifyAccessModConflict(c.Modifiers, c.NameRange, out)
	if !c.Modifiers.IsPublic() && !c.Modifiers.IsProtected() {
		out.Addf(diagnostics.ClassMemberNoAccessModError, c.NameRange, "a class member must be either public or protected")
	}
	if c.Modifiers.Has(ast.ModAbstract) || c.Modifiers.Has(ast.ModStatic) || c.Modifiers.Has(ast.ModFinal) || c.Modifiers.Has(ast.ModNative) {
		out.Addf(diagnostics.ClassConstructorModifierError, c.NameRange, "a class constructor cannot be abstract, static, final, or native")
	}
	if c.Body == nil {
		out.Addf(diagnostics.ClassConstructorEmptyError, c.NameRange, "a constructor cannot have an empty body")
	}
}

func checkInterfaceMethodModifiers(m *ast.MethodDecl, out *diagnostics.List) {
	if m.Modifiers.IsProtected() || m.Modifiers.IsStatic() || m.Modifiers.IsFinal() || m.Modifiers.Has(ast.ModNative) {
		out.Addf(diagnostics.InterfaceMethodModifierError, m.NameRange, "an interface method cannot be protected, static, final, or native")
	}
	if !m.Modifiers.IsPublic() {
		out.Addf(diagnostics.InterfaceMethodNoAccessModError, m.NameRange, "an interface member must be public")
	}
	if m.Body != nil {
		out.Addf(diagnostics.InterfaceMethodImplError, m.NameRange, "an interface method cannot have a body")
	}
}

func verifyAccessModConflict(mods ast.Modifiers, r token.Range, out *diagnostics.List) {
	if mods.IsPublic() && mods.IsProtected() {
		out.Addf(diagnostics.ConflictingAccessModError, r, "a declaration cannot have conflicting access modifiers")
	}
}
