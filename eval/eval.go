// ----------------------------------------------------------------------------
// FILE: eval/eval.go
// ----------------------------------------------------------------------------
// PACKAGE: eval
// PURPOSE: The tree-walking interpreter proper (spec.md §4.7): special
//          forms, function/macro invocation, quasi-quotation and the
//          tagbody/go control transfer. Generalizes the teacher's single
//          big `Eval(node, env) object.Object` switch
//          (evaluator/evaluator.go) into `Eval(tree parsetree.Node)
//          value.ID`, threading an explicit Context instead of the
//          teacher's module-level NULL/TRUE/FALSE singletons (Design Note
//          "Global mutable state... a clean re-implementation threads an
//          interpreter context through eval explicitly").
// ----------------------------------------------------------------------------

package eval

import (
	"fmt"

	"github.com/vyion-lang/vyion/callable"
	"github.com/vyion-lang/vyion/number"
	"github.com/vyion-lang/vyion/parsetree"
	"github.com/vyion-lang/vyion/scope"
	"github.com/vyion-lang/vyion/value"
)

// Context threads the heap-backed value store and the scope/call-stack
// env through every evaluation step, replacing the teacher's
// module-level globals (spec.md Design Notes).
type Context struct {
	Store *value.Store
	Env   *scope.Env
}

// NewContext returns a Context over a fresh store and environment, with
// the built-in boolean names bound (spec.md §6.3: `true!`/`false!`).
func NewContext() *Context {
	return NewContextWithStore(value.NewStore())
}

// NewContextWithStore is NewContext over a caller-provided store, for
// callers that need non-default heap tunables (SPEC_FULL.md §3.4's
// `.vyion.yaml` heap_chunk_size/heap_growth, via value.NewStoreWithParams).
func NewContextWithStore(store *value.Store) *Context {
	ctx := &Context{Store: store, Env: scope.NewEnv()}
	ctx.Env.DefineGlobal("true!", ctx.Store.True())
	ctx.Env.DefineGlobal("false!", ctx.Store.False())
	return ctx
}

// specialForms is the closed set of list heads the evaluator dispatches
// on directly rather than treating as a call (spec.md §4.7 table).
var specialForms = map[string]bool{
	"lambda":                         true,
	"mambda":                         true,
	"set":                            true,
	"global":                         true,
	"if":                             true,
	parsetree.HeadQuote:              true,
	parsetree.HeadQuoteSubstitutions: true,
	"tagbody":                        true,
	"go":                             true,
}

// Eval evaluates tree and returns a value-id, wrapping the underlying
// dispatch to attach the current node's position to any error that
// surfaces without one yet (spec.md §4.7: "If the error has no
// associated parse-tree, assign the current node before returning").
func (ctx *Context) Eval(tree parsetree.Node) value.ID {
	id := ctx.evalNode(tree)
	if ctx.Store.Kind(id) == value.KindError {
		ctx.Store.AttachNode(id, tree)
	}
	return id
}

func (ctx *Context) evalNode(tree parsetree.Node) value.ID {
	switch n := tree.(type) {
	case *parsetree.NumberLiteral:
		return ctx.Store.AllocNumber(n.Value)
	case *parsetree.StringLiteral:
		return ctx.Store.AllocString(n.Value)
	case *parsetree.Identifier:
		id, ok := ctx.Env.Lookup(n.Name)
		if !ok {
			return ctx.errorAt(n, fmt.Sprintf("Variable not found: %s", n.Name))
		}
		return id
	case *parsetree.List:
		return ctx.evalList(n)
	case *parsetree.Reference:
		return ctx.evalReference(n)
	case *parsetree.Error:
		return ctx.Store.AllocError(n.Message, n)
	default:
		return ctx.errorAt(tree, "cannot evaluate node")
	}
}

func (ctx *Context) errorAt(node parsetree.Node, msg string) value.ID {
	return ctx.Store.AllocError(msg, node)
}

func (ctx *Context) isError(id value.ID) bool {
	return ctx.Store.Kind(id) == value.KindError
}

func (ctx *Context) isFlowControl(id value.ID) bool {
	return ctx.Store.Kind(id) == value.KindFlowControl
}

// evalReference handles the `obj:ref` binding form (spec.md §4.3). The
// core spec leaves reference semantics to a future collaborator; absent
// any surrounding module/struct system here, a bare `obj:member` is
// evaluated as a one-argument message send — `(member obj)` — which
// gives the syntax a concrete, if minimal, meaning without inventing a
// struct/field system the spec never describes.
func (ctx *Context) evalReference(n *parsetree.Reference) value.ID {
	memberIdent, ok := n.Member.(*parsetree.Identifier)
	if !ok {
		return ctx.errorAt(n, "reference member must be an identifier")
	}
	calleeID, ok := ctx.Env.Lookup(memberIdent.Name)
	if !ok {
		return ctx.errorAt(n, "Callable not found: "+memberIdent.Name)
	}
	return ctx.invokeWithTail(calleeID, []parsetree.Node{n.Object}, n)
}

func (ctx *Context) evalList(node *parsetree.List) value.ID {
	if len(node.Elements) == 0 {
		return ctx.Store.EmptyList()
	}

	if ident, ok := node.Elements[0].(*parsetree.Identifier); ok && specialForms[ident.Name] {
		return ctx.evalSpecialForm(ident.Name, node)
	}
	if ident, ok := node.Elements[0].(*parsetree.Identifier); ok {
		switch ident.Name {
		case parsetree.HeadSubstitution, parsetree.HeadSplicingSub:
			// A bare (unquoted) substitution marker simply evaluates its
			// inner expression — quoted-eval is the only context where
			// $/$@ change meaning (spec.md §4.8).
			if len(node.Elements) != 2 {
				return ctx.errorAt(node, ident.Name+" requires exactly one expression")
			}
			return ctx.Eval(node.Elements[1])
		case parsetree.HeadInfix:
			return ctx.errorAt(node, "curly-infix expressions are parsed but have no evaluator meaning")
		}
		calleeID, ok := ctx.Env.Lookup(ident.Name)
		if !ok {
			return ctx.errorAt(node, "Callable not found: "+ident.Name)
		}
		return ctx.invokeWithTail(calleeID, node.Elements[1:], node)
	}

	headVal := ctx.Eval(node.Elements[0])
	if ctx.isError(headVal) {
		return headVal
	}
	switch ctx.Store.Kind(headVal) {
	case value.KindFunction, value.KindMacro:
		return ctx.invokeWithTail(headVal, node.Elements[1:], node)
	default:
		result := headVal
		for _, e := range node.Elements[1:] {
			result = ctx.Eval(e)
			if ctx.isError(result) {
				return result
			}
		}
		return result
	}
}

func (ctx *Context) evalSpecialForm(name string, node *parsetree.List) value.ID {
	switch name {
	case "lambda":
		return ctx.evalLambda(node, false)
	case "mambda":
		return ctx.evalLambda(node, true)
	case "set":
		return ctx.evalSet(node)
	case "global":
		return ctx.evalGlobal(node)
	case "if":
		return ctx.evalIf(node)
	case parsetree.HeadQuote:
		return ctx.evalQuote(node, false)
	case parsetree.HeadQuoteSubstitutions:
		return ctx.evalQuote(node, true)
	case "tagbody":
		return ctx.evalTagbody(node)
	case "go":
		return ctx.evalGo(node)
	default:
		return ctx.errorAt(node, "unknown special form: "+name)
	}
}

// evalLambda implements `(lambda formals body…)` / `(mambda formals
// body…)` (spec.md §4.6.1, §4.6.4): argument descriptors are parsed and
// reordered, optional defaults are evaluated now (at definition time),
// and the closure scope is captured — the body is not evaluated here.
func (ctx *Context) evalLambda(node *parsetree.List, isMacro bool) value.ID {
	kind := "lambda"
	if isMacro {
		kind = "mambda"
	}
	if len(node.Elements) < 2 {
		return ctx.errorAt(node, kind+" requires a formal list")
	}
	formsList, ok := node.Elements[1].(*parsetree.List)
	if !ok {
		return ctx.errorAt(node, kind+"'s formal list must be a list")
	}
	raws, err := callable.ParseFormals(formsList.Elements)
	if err != nil {
		return ctx.errorAt(node, err.Error())
	}

	descs := make([]value.ArgDescriptor, len(raws))
	for i, r := range raws {
		d := value.ArgDescriptor{Name: r.Name}
		switch r.Kind {
		case callable.RawPositional:
			d.Kind = value.ArgPositional
		case callable.RawNamed:
			d.Kind = value.ArgNamed
		case callable.RawRest:
			d.Kind = value.ArgRest
		case callable.RawOptional, callable.RawNamedOptional:
			if r.Kind == callable.RawOptional {
				d.Kind = value.ArgOptional
			} else {
				d.Kind = value.ArgNamedOptional
			}
			defID := ctx.Eval(r.DefaultExpr)
			if ctx.isError(defID) {
				return defID
			}
			d.Default = defID
		}
		descs[i] = d
	}
	descs = callable.Reorder(descs)

	body := append([]parsetree.Node(nil), node.Elements[2:]...)
	c := &value.Callable{Args: descs, Body: body, Closure: ctx.Env.CaptureClosure()}
	if isMacro {
		return ctx.Store.AllocMacro(c)
	}
	return ctx.Store.AllocFunction(c)
}

// evalSet implements `(set name expr)` (spec.md §3.6, §4.7 table): update
// an existing binding in local/function/global if present, else define
// locally (the "likely unintentional" double-effect from spec.md §9 is
// not reproduced — see DESIGN.md).
func (ctx *Context) evalSet(node *parsetree.List) value.ID {
	if len(node.Elements) != 3 {
		return ctx.errorAt(node, "set requires a name and an expression")
	}
	nameNode, ok := node.Elements[1].(*parsetree.Identifier)
	if !ok {
		return ctx.errorAt(node, "set's first argument must be an identifier")
	}
	val := ctx.Eval(node.Elements[2])
	if ctx.isError(val) {
		return val
	}
	ctx.Env.Assign(nameNode.Name, val)
	return val
}

// evalGlobal implements `(global name expr)`: define unconditionally in
// the global scope (spec.md §4.7 table).
func (ctx *Context) evalGlobal(node *parsetree.List) value.ID {
	if len(node.Elements) != 3 {
		return ctx.errorAt(node, "global requires a name and an expression")
	}
	nameNode, ok := node.Elements[1].(*parsetree.Identifier)
	if !ok {
		return ctx.errorAt(node, "global's first argument must be an identifier")
	}
	val := ctx.Eval(node.Elements[2])
	if ctx.isError(val) {
		return val
	}
	ctx.Env.DefineGlobal(nameNode.Name, val)
	return val
}

// evalIf implements `(if cond then else?)` (spec.md §4.7 table): cond
// must reduce to a boolean; a missing else with a false condition
// returns the false singleton.
func (ctx *Context) evalIf(node *parsetree.List) value.ID {
	if len(node.Elements) < 3 || len(node.Elements) > 4 {
		return ctx.errorAt(node, "if requires a condition and a then-branch, with an optional else-branch")
	}
	cond := ctx.Eval(node.Elements[1])
	if ctx.isError(cond) {
		return cond
	}
	if ctx.Store.Kind(cond) != value.KindBoolean {
		return ctx.errorAt(node, "if's condition must be a boolean")
	}
	if ctx.Store.BoolValue(cond) {
		return ctx.Eval(node.Elements[2])
	}
	if len(node.Elements) == 4 {
		return ctx.Eval(node.Elements[3])
	}
	return ctx.Store.False()
}

// evalQuote implements `(quote x)` / `(quote-substitutions x)` (spec.md
// §4.7 table, §4.8): converts x into a value under quoted-eval with
// do-subst false/true respectively.
func (ctx *Context) evalQuote(node *parsetree.List, doSubst bool) value.ID {
	if len(node.Elements) != 2 {
		return ctx.errorAt(node, "quote requires exactly one expression")
	}
	return ctx.quotedEval(node.Elements[1], doSubst)
}

// quotedEval implements spec.md §4.8: converts a parse tree into a value
// without invoking ordinary evaluation, except inside a substitution
// (`$x`) or splicing-substitution (`$@x`) when doSubst is true.
func (ctx *Context) quotedEval(node parsetree.Node, doSubst bool) value.ID {
	switch n := node.(type) {
	case *parsetree.Identifier:
		return ctx.Store.AllocSymbol(n.Name)
	case *parsetree.NumberLiteral:
		return ctx.Store.AllocNumber(n.Value)
	case *parsetree.StringLiteral:
		return ctx.Store.AllocString(n.Value)
	case *parsetree.Error:
		return ctx.Store.AllocError(n.Message, n)
	case *parsetree.Reference:
		// Quoting a reference has no dedicated runtime representation;
		// quote it as a 2-element list of its quoted operands so the
		// round trip (spec.md Property 6) at least preserves structure.
		obj := ctx.quotedEval(n.Object, doSubst)
		if ctx.isError(obj) {
			return obj
		}
		member := ctx.quotedEval(n.Member, doSubst)
		if ctx.isError(member) {
			return member
		}
		return ctx.Store.ListFromSlice([]value.ID{obj, member})
	case *parsetree.List:
		if head, ok := parsetree.Head(n); ok && head == parsetree.HeadSubstitution && doSubst {
			if len(n.Elements) != 2 {
				return ctx.errorAt(n, "substitution requires exactly one expression")
			}
			return ctx.Eval(n.Elements[1])
		}
		var ids []value.ID
		for _, child := range n.Elements {
			if childList, ok := child.(*parsetree.List); ok && doSubst {
				if childHead, ok2 := parsetree.Head(childList); ok2 && childHead == parsetree.HeadSplicingSub {
					spliced, errID, bad := ctx.splice(childList)
					if bad {
						return errID
					}
					ids = append(ids, spliced...)
					continue
				}
			}
			childVal := ctx.quotedEval(child, doSubst)
			if ctx.isError(childVal) {
				return childVal
			}
			ids = append(ids, childVal)
		}
		return ctx.Store.ListFromSlice(ids)
	default:
		return ctx.errorAt(node, "cannot quote this kind of node")
	}
}

func (ctx *Context) splice(childList *parsetree.List) (elems []value.ID, errID value.ID, bad bool) {
	if len(childList.Elements) != 2 {
		return nil, ctx.errorAt(childList, "splicing-substitution requires exactly one expression"), true
	}
	innerVal := ctx.Eval(childList.Elements[1])
	if ctx.isError(innerVal) {
		return nil, innerVal, true
	}
	if ctx.Store.Kind(innerVal) != value.KindList {
		return nil, ctx.errorAt(childList, "splicing-substitution requires a list result"), true
	}
	elements, ok := ctx.Store.ListToSlice(innerVal)
	if !ok {
		return nil, ctx.errorAt(childList, "splicing-substitution requires a proper list"), true
	}
	return elements, 0, false
}

// evalTagbody implements spec.md §4.7's tagbody/go control transfer:
// tags are evaluated in order; a `go` to a tag defined in this tagbody
// resumes execution at that tag's first expression, otherwise the flow-
// control value propagates upward unconsumed (spec.md Property 7).
func (ctx *Context) evalTagbody(node *parsetree.List) value.ID {
	type tag struct {
		name string
		body []parsetree.Node
	}
	var tags []tag
	index := make(map[string]int)
	for _, clause := range node.Elements[1:] {
		tl, ok := clause.(*parsetree.List)
		if !ok || len(tl.Elements) == 0 {
			return ctx.errorAt(node, "tagbody clause must be a tagged list")
		}
		nameIdent, ok := tl.Elements[0].(*parsetree.Identifier)
		if !ok {
			return ctx.errorAt(tl, "tagbody tag must be an identifier")
		}
		index[nameIdent.Name] = len(tags)
		tags = append(tags, tag{name: nameIdent.Name, body: tl.Elements[1:]})
	}

	result := ctx.Store.EmptyList()
	i := 0
	for i < len(tags) {
		jumped := false
		for _, expr := range tags[i].body {
			v := ctx.Eval(expr)
			if ctx.isError(v) {
				return v
			}
			if ctx.isFlowControl(v) && ctx.Store.FlowControl(v).Kind == value.ControlGo {
				target := ctx.Store.FlowControl(v).Target
				idx, ok := index[target]
				if !ok {
					return v // no matching tag: propagate upward (Property 7)
				}
				i = idx
				jumped = true
				break
			}
			result = v
		}
		if !jumped {
			i++
		}
	}
	return result
}

// evalGo implements `(go tag)`: produces a flow-control signal consumed
// by the enclosing tagbody (spec.md §4.7 table).
func (ctx *Context) evalGo(node *parsetree.List) value.ID {
	if len(node.Elements) != 2 {
		return ctx.errorAt(node, "go requires exactly one tag")
	}
	nameIdent, ok := node.Elements[1].(*parsetree.Identifier)
	if !ok {
		return ctx.errorAt(node, "go's target must be an identifier")
	}
	return ctx.Store.AllocFlowControl(nameIdent.Name)
}

// invokeWithTail evaluates a call's actual-argument tail under the
// appropriate semantics for the callee's kind (ordinary evaluation for
// functions, quoted-without-substitution for macros, spec.md §4.6.3)
// and applies it.
func (ctx *Context) invokeWithTail(calleeID value.ID, tail []parsetree.Node, callNode parsetree.Node) value.ID {
	switch ctx.Store.Kind(calleeID) {
	case value.KindFunction:
		actuals, errID, bad := ctx.evalTail(tail, ctx.Eval)
		if bad {
			return errID
		}
		return ctx.invoke(calleeID, actuals, callNode)
	case value.KindMacro:
		actuals, errID, bad := ctx.evalTail(tail, func(n parsetree.Node) value.ID {
			return ctx.quotedEval(n, false)
		})
		if bad {
			return errID
		}
		return ctx.invokeMacro(calleeID, actuals, callNode)
	default:
		return ctx.errorAt(callNode, "value is not callable")
	}
}

// evalTail implements spec.md §4.6.2's call-site actual syntax: a plain
// expression is a positional actual; a bare `~` followed by a `(name
// value-expr)` group is a named actual, evaluated via evalActual so
// macros and functions can supply different evaluation semantics. Both
// kinds are returned in original left-to-right order; Bind decides
// whether a named actual matches a declared `~`/`~?` formal or folds
// back into the positional stream.
func (ctx *Context) evalTail(tail []parsetree.Node, evalActual func(parsetree.Node) value.ID) (actuals []callable.Actual, errID value.ID, bad bool) {
	i := 0
	for i < len(tail) {
		if ident, ok := tail[i].(*parsetree.Identifier); ok && ident.Name == "~" {
			if i+1 >= len(tail) {
				return nil, ctx.errorAt(tail[i], "expected (name value) after '~'"), true
			}
			group, ok := tail[i+1].(*parsetree.List)
			if !ok || len(group.Elements) != 2 {
				return nil, ctx.errorAt(tail[i+1], "expected (name value) after '~'"), true
			}
			nameIdent, ok := group.Elements[0].(*parsetree.Identifier)
			if !ok {
				return nil, ctx.errorAt(group, "named argument name must be an identifier"), true
			}
			val := evalActual(group.Elements[1])
			if ctx.isError(val) {
				return nil, val, true
			}
			actuals = append(actuals, callable.Actual{Name: nameIdent.Name, ID: val})
			i += 2
			continue
		}
		val := evalActual(tail[i])
		if ctx.isError(val) {
			return nil, val, true
		}
		actuals = append(actuals, callable.Actual{ID: val})
		i++
	}
	return actuals, 0, false
}

// invoke implements the call protocol of spec.md §4.5/§4.6.2 for a
// function value: bind actuals to formals, push a fresh local scope with
// the callee's captured closure installed as current-function, evaluate
// the body in order, and restore the caller's scopes on return. Native
// (built-in) callables skip binding entirely and call through directly.
func (ctx *Context) invoke(calleeID value.ID, actuals []callable.Actual, callNode parsetree.Node) value.ID {
	c := ctx.Store.Callable(calleeID)
	if c.Native != nil {
		positionals := make([]value.ID, 0, len(actuals))
		for _, a := range actuals {
			if a.Name != "" {
				return ctx.errorAt(callNode, "built-in functions do not accept named arguments")
			}
			positionals = append(positionals, a.ID)
		}
		return c.Native(ctx.Store, positionals)
	}

	bindings, err := callable.Bind(ctx.Store, c.Args, actuals)
	if err != nil {
		return ctx.errorAt(callNode, err.Error())
	}

	ctx.Env.PushCall(scope.New(), c.Closure)
	for _, b := range bindings {
		ctx.Env.Define(b.Name, b.ID)
	}

	result := ctx.Store.EmptyList()
	for _, expr := range c.Body {
		result = ctx.Eval(expr)
		if ctx.isError(result) {
			ctx.Store.AppendTrace(result, callNode.Position())
			ctx.Env.PopCall()
			return result
		}
	}
	ctx.Env.PopCall()
	return result
}

// invokeMacro implements spec.md §4.6.3: the macro body runs under
// ordinary evaluation in a scope bound to the already quoted-evaluated
// actuals; its result value is converted back into a parse tree and
// re-evaluated in the caller's environment (not the macro's closure).
func (ctx *Context) invokeMacro(calleeID value.ID, actuals []callable.Actual, callNode parsetree.Node) value.ID {
	c := ctx.Store.Callable(calleeID)
	bindings, err := callable.Bind(ctx.Store, c.Args, actuals)
	if err != nil {
		return ctx.errorAt(callNode, err.Error())
	}

	ctx.Env.PushCall(scope.New(), c.Closure)
	for _, b := range bindings {
		ctx.Env.Define(b.Name, b.ID)
	}

	result := ctx.Store.EmptyList()
	for _, expr := range c.Body {
		result = ctx.Eval(expr)
		if ctx.isError(result) {
			ctx.Store.AppendTrace(result, callNode.Position())
			ctx.Env.PopCall()
			return result
		}
	}
	ctx.Env.PopCall()

	expanded, convErr := ctx.valueToTree(result, callNode)
	if convErr != nil {
		return ctx.errorAt(callNode, convErr.Error())
	}
	return ctx.Eval(expanded)
}

// valueToTree implements spec.md §4.6.3's value->tree conversion for
// macro expansion: lists become list-trees, symbols become identifiers,
// numbers become number trees; any other kind is a hard error.
func (ctx *Context) valueToTree(id value.ID, posNode parsetree.Node) (parsetree.Node, error) {
	pos := posNode.Position()
	switch ctx.Store.Kind(id) {
	case value.KindSymbol:
		return &parsetree.Identifier{Pos: pos, Name: ctx.Store.Symbol(id)}, nil
	case value.KindNumber:
		n := ctx.Store.Number(id)
		return &parsetree.NumberLiteral{Pos: pos, Raw: number.Inspect(n), Value: n}, nil
	case value.KindList:
		elements, ok := ctx.Store.ListToSlice(id)
		if !ok {
			return nil, fmt.Errorf("macro expansion produced an improper list")
		}
		nodes := make([]parsetree.Node, len(elements))
		for i, e := range elements {
			n, err := ctx.valueToTree(e, posNode)
			if err != nil {
				return nil, err
			}
			nodes[i] = n
		}
		return &parsetree.List{Pos: pos, Elements: nodes}, nil
	default:
		return nil, fmt.Errorf("macro expansion must produce a list, symbol or number, got %s", ctx.Store.Kind(id))
	}
}
