package driver

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookPosRunStart is a hook position that triggers after the arrays are
// initialised and before the first step.
var HookPosRunStart = &HookPos{Name: "RunStart"}

// HookPosStepEnd is a hook position that triggers after each accepted
// step, once ComputeVariables has run for it.
var HookPosStepEnd = &HookPos{Name: "StepEnd"}

// HookPosRunEnd is a hook position that triggers after the last step.
var HookPosRunEnd = &HookPos{Name: "RunEnd"}

// HookCtx is the context that holds all the information about the site
// that a hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)
}

// A Hook is a short piece of program that can be invoked by a hookable
// object.
type Hook interface {
	// Func determines what to do if the hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other types that
// implement the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// InvokeHook triggers the registered Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}
