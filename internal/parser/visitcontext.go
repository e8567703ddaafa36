package parser

// VisitContext carries traversal state explicitly through a recursive AST
// walk instead of hanging it off global/visitor-instance state.
type VisitContext struct {
	classStack        []string
	handledIdentifiers map[uintptr]bool
	depth             int
}

func NewVisitContext() *VisitContext {
	return &VisitContext{
		classStack:         make([]string, 0, 8),
		handledIdentifiers: make(map[uintptr]bool),
	}
}

// PushClass enters a class/mixin/extension body, extending the dotted
// qualified-name prefix used by generated-accessor chains and
// CodeElement.Parent.
func (ctx *VisitContext) PushClass(name string) {
	ctx.classStack = append(ctx.classStack, name)
	ctx.depth++
}

func (ctx *VisitContext) PopClass() {
	if len(ctx.classStack) > 0 {
		ctx.classStack = ctx.classStack[:len(ctx.classStack)-1]
		ctx.depth--
	}
}

// CurrentClass returns the innermost enclosing class name, or "" at the top level.
func (ctx *VisitContext) CurrentClass() string {
	if len(ctx.classStack) == 0 {
		return ""
	}
	return ctx.classStack[len(ctx.classStack)-1]
}

// QualifiedName joins the class stack with name using ".", matching the
// GeneratedAssetMapping invariant that chains share a prefix with the
// outermost class.
func (ctx *VisitContext) QualifiedName(name string) string {
	if len(ctx.classStack) == 0 {
		return name
	}
	out := ctx.classStack[0]
	for _, c := range ctx.classStack[1:] {
		out += "." + c
	}
	return out + "." + name
}

// MarkHandled records that a node (identified by its NodeID byte-span key)
// has already been attributed to a reference so a
// call expression's callee is not double-counted against its own appearance
// as, say, a member-access receiver.
func (ctx *VisitContext) MarkHandled(nodeID uintptr) {
	ctx.handledIdentifiers[nodeID] = true
}

func (ctx *VisitContext) IsHandled(nodeID uintptr) bool {
	return ctx.handledIdentifiers[nodeID]
}
