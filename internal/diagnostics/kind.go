package diagnostics

// Kind is the name of a diagnostic. The complete inventory below is the
// contract named in spec.md §6 — every compiler stage reports only
// kinds from this list (lexer/parser syntax errors are a separate,
// unstructured channel; see internal/lexer.Error and
// internal/parser.Error).
type Kind string

const (
	UnknownTypenameError                  Kind = "UnknownTypenameError"
	UnknownPackageError                   Kind = "UnknownPackageError"
	UnknownImportError                    Kind = "UnknownImportError"
	DuplicateInheritanceError             Kind = "DuplicateInheritanceError"
	InterfaceExtendsClassError            Kind = "InterfaceExtendsClassError"
	ClassExtendInterfaceError             Kind = "ClassExtendInterfaceError"
	ClassImplementsClassError             Kind = "ClassImplementsClassError"
	ExtendsCycleError                     Kind = "ExtendsCycleError"
	ClassMethodEmptyError                 Kind = "ClassMethodEmptyError"
	ClassMethodNotEmptyError              Kind = "ClassMethodNotEmptyError"
	ClassMethodAbstractModifierError      Kind = "ClassMethodAbstractModifierError"
	ClassMethodStaticFinalError           Kind = "ClassMethodStaticFinalError"
	ClassMethodNativeNotStaticError       Kind = "ClassMethodNativeNotStaticError"
	ClassConstructorModifierError         Kind = "ClassConstructorModifierError"
	ClassConstructorEmptyError            Kind = "ClassConstructorEmptyError"
	ClassModifierError                    Kind = "ClassModifierError"
	AbstractFinalClass                    Kind = "AbstractFinalClass"
	InterfaceModifierError                Kind = "InterfaceModifierError"
	InterfaceFieldError                   Kind = "InterfaceFieldError"
	InterfaceMethodModifierError          Kind = "InterfaceMethodModifierError"
	InterfaceMethodImplError              Kind = "InterfaceMethodImplError"
	InterfaceMethodNoAccessModError       Kind = "InterfaceMethodNoAccessModError"
	InterfaceNoAccessModError             Kind = "InterfaceNoAccessModError"
	ClassMemberNoAccessModError           Kind = "ClassMemberNoAccessModError"
	ClassNoAccessModError                 Kind = "ClassNoAccessModError"
	ClassFieldModifierError               Kind = "ClassFieldModifierError"
	ConflictingAccessModError             Kind = "ConflictingAccessModError"
	ConstructorNameError                  Kind = "ConstructorNameError"
	MethodDuplicateDefinitionError        Kind = "MethodDuplicateDefinitionError"
	FieldDuplicateDefinitionError         Kind = "FieldDuplicateDefinitionError"
	DifferingReturnTypeError              Kind = "DifferingReturnTypeError"
	StaticMethodOverrideError             Kind = "StaticMethodOverrideError"
	LowerVisibilityError                  Kind = "LowerVisibilityError"
	OverrideFinalMethodError              Kind = "OverrideFinalMethodError"
	ParentClassEmptyConstructorError      Kind = "ParentClassEmptyConstructorError"
	NeedAbstractClassError                Kind = "NeedAbstractClassError"
	ParentFinalError                      Kind = "ParentFinalError"
	UndefinedMethodError                  Kind = "UndefinedMethodError"
	InstanceMethodOnStaticError           Kind = "InstanceMethodOnStaticError"
	StaticMethodOnInstanceError           Kind = "StaticMethodOnInstanceError"
	PermissionError                       Kind = "PermissionError"
	NewAbstractClassError                 Kind = "NewAbstractClassError"
	UndefinedReferenceError               Kind = "UndefinedReferenceError"
	InstanceFieldOnStaticError            Kind = "InstanceFieldOnStaticError"
	StaticFieldOnInstanceError            Kind = "StaticFieldOnInstanceError"
	TypeMismatchError                     Kind = "TypeMismatchError"
	IndexNonArrayError                    Kind = "IndexNonArrayError"
	IncompatibleCastError                 Kind = "IncompatibleCastError"
	InstanceOfPrimitiveError              Kind = "InstanceOfPrimitiveError"
	IncompatibleInstanceOfError           Kind = "IncompatibleInstanceOfError"
	InvalidInstanceOfTypeError            Kind = "InvalidInstanceOfTypeError"
	NoStringError                         Kind = "NoStringError"
	UnaryNonNumericError                  Kind = "UnaryNonNumericError"
	UnaryNonBoolError                     Kind = "UnaryNonBoolError"
	UnassignableError                     Kind = "UnassignableError"
	InvalidReturnError                    Kind = "InvalidReturnError"
	IncomparableTypeError                 Kind = "IncomparableTypeError"
	ThisInStaticMemberError               Kind = "ThisInStaticMemberError"
	DuplicateVarDeclError                 Kind = "DuplicateVarDeclError"
	VariableInitializerSelfReferenceError Kind = "VariableInitializerSelfReferenceError"
	FieldOrderError                       Kind = "FieldOrderError"
	UnreachableCodeError                  Kind = "UnreachableCodeError"
	MethodNeedsReturnError                Kind = "MethodNeedsReturnError"
	InvalidIntRangeError                  Kind = "InvalidIntRangeError"
	MultipleTypesPerCompUnitError         Kind = "MultipleTypesPerCompUnitError"
	IncorrectFileNameError                Kind = "IncorrectFileNameError"
	AmbiguousTypeError                    Kind = "AmbiguousTypeError"
	TypeWithTypePrefixError               Kind = "TypeWithTypePrefixError"
	DuplicateCompUnitNames                Kind = "DuplicateCompUnitNames"
	TypeDuplicateDefinitionError          Kind = "TypeDuplicateDefinitionError"
	InvalidLHSError                       Kind = "InvalidLHSError"
	InvalidCallError                      Kind = "InvalidCallError"
	ExplicitThisCallError                 Kind = "ExplicitThisCallError"
	InvalidVoidTypeError                  Kind = "InvalidVoidTypeError"
	NewNonReferenceTypeError              Kind = "NewNonReferenceTypeError"
	InvalidTopLevelStatement              Kind = "InvalidTopLevelStatement"
)
