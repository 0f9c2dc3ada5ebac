package analysis

import (
	"fmt"
	"strings"
)

// A CyclicDependencyError reports a dependency cycle among equations.
// Variables lists the targets on the cycle in the order they were
// discovered.
type CyclicDependencyError struct {
	Variables []string
}

func (e CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency involving %s",
		strings.Join(e.Variables, " -> "))
}

// An UnresolvedReferenceError reports an equation that reads a name not
// declared in the model.
type UnresolvedReferenceError struct {
	Target string
	Name   string
}

func (e UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("equation for %q references undeclared variable %q",
		e.Target, e.Name)
}

// A DuplicateAssignmentError reports a variable that is assigned more
// than once, either by two equations or by an equation on top of an
// initial value or constant.
type DuplicateAssignmentError struct {
	Variable  string
	Component string
}

func (e DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("variable %q in component %q is assigned more than once",
		e.Variable, e.Component)
}

// A MissingAssignmentError reports a non-constant variable that no
// equation defines.
type MissingAssignmentError struct {
	Variable  string
	Component string
}

func (e MissingAssignmentError) Error() string {
	return fmt.Sprintf("variable %q in component %q is not defined by any equation",
		e.Variable, e.Component)
}

// A MissingInitialValueError reports a state or constant without an
// initial value.
type MissingInitialValueError struct {
	Variable  string
	Component string
}

func (e MissingInitialValueError) Error() string {
	return fmt.Sprintf("variable %q in component %q has no initial value",
		e.Variable, e.Component)
}

// An InvalidModelError reports a structural defect that is not tied to
// a single variable, such as a missing variable of integration.
type InvalidModelError struct {
	Reason string
}

func (e InvalidModelError) Error() string {
	return "invalid model: " + e.Reason
}
