package parser

import (
	"github.com/flylang/flylang/internal/fly/ast"
	"github.com/flylang/flylang/internal/fly/module"
	"github.com/flylang/flylang/internal/fly/token"
)

// branchesOptions configures one call to the branches driver (spec §4.4.2).
type branchesOptions struct {
	// forceStop reports whether the current token ends the whole
	// branches call; the token is left unconsumed.
	forceStop func(p *Parser, t token.Token) bool

	// splitKind, if set, is the token kind that ends the current branch
	// and starts a new one (consumed). If nil, everything parses into a
	// single branch and EndOfInstruction is the only separator.
	splitKind *token.Kind

	// persistentBehaviors, if set, replaces Behaviors before every
	// instruction in every branch, rather than letting it flow from the
	// caller.
	persistentBehaviors *Behaviors
}

// branches parses a sequence of instructions delimited by forceStop and
// split into sub-sequences by splitKind, per spec §4.4.2. Within one
// branch, EndOfInstruction (`;`) always separates successive
// instructions, regardless of splitKind. Always returns at least one
// (possibly empty) branch. The driver neither saves nor restores any
// parser-wide state beyond the token cursor, since Behaviors already
// flows by value.
func (p *Parser) branches(behaviors Behaviors, opts branchesOptions) ([][]ast.Instruction, []error, error) {
	var result [][]ast.Instruction
	var warnings []error
	var current []ast.Instruction

	for {
		// Coalesce redundant `;` separators: they may repeat freely
		// without introducing empty instructions.
		for p.is(token.EndOfInstruction) {
			p.advance()
		}
		if opts.forceStop(p, p.cur()) || p.is(token.EOF) {
			break
		}

		b := behaviors
		if opts.persistentBehaviors != nil {
			b = *opts.persistentBehaviors
		}

		instr, warns, err := p.instruction(b)
		warnings = append(warnings, warns...)
		if err != nil {
			return nil, warnings, err
		}
		current = append(current, instr)

		if opts.forceStop(p, p.cur()) || p.is(token.EOF) {
			break
		}
		if p.is(token.EndOfInstruction) {
			p.advance()
			continue
		}
		if opts.splitKind != nil && p.is(*opts.splitKind) {
			p.advance()
			result = append(result, current)
			current = nil
			continue
		}

		return nil, warnings, &Expected{
			After:    "instruction",
			Expected: "`;` or a separator",
			Found:    p.cur(),
		}
	}

	result = append(result, current)
	return result, warnings, nil
}

// scopeResult is the parsed payload of a `[@target](branches)` construct.
type scopeResult struct {
	Target   *ast.ScopeTarget
	Branches [][]ast.Instruction
	Slice    module.Slice
}

// scope implements the driver of the same name (spec §4.4.3): an
// optional leading named ScopeTarget, a required `(`, comma-separated
// branches, and a required `)`. The returned slice spans from the
// opening `(` through the closing `)` (not including a leading `@target`,
// which callers fold into their own node's slice separately).
func (p *Parser) scope(behaviors Behaviors, opts branchesOptions) (scopeResult, []error, error) {
	var target *ast.ScopeTarget
	if p.is(token.ScopeTargetTok) {
		t := p.cur()
		if !t.ScopeTargetIsNamed {
			return scopeResult{}, nil, &UnableToParse{At: t.Slice, Reason: "a scope target on a definition must be named"}
		}
		p.advance()
		target = &ast.ScopeTarget{Slc: t.Slice, IsNamed: true, Named: t.ScopeTargetNamed}
	}

	open, ok := p.expect(token.BlockOpen)
	if !ok {
		return scopeResult{}, nil, &Expected{After: "scope target", Expected: "`(`", Found: p.cur()}
	}

	if opts.splitKind == nil {
		comma := token.ArgSeparator
		opts.splitKind = &comma
	}
	if opts.forceStop == nil {
		opts.forceStop = func(p *Parser, t token.Token) bool { return t.Kind == token.BlockClose }
	}

	result, warnings, err := p.branches(behaviors, opts)
	if err != nil {
		return scopeResult{}, warnings, err
	}

	close, ok := p.expect(token.BlockClose)
	if !ok {
		return scopeResult{}, warnings, &Expected{After: "scope body", Expected: "`)`", Found: p.cur()}
	}

	allEmpty := true
	for _, branch := range result {
		if len(branch) > 0 {
			allEmpty = false
			break
		}
	}
	full := union(open.Slice, close.Slice)
	if allEmpty {
		warnings = append(warnings, &EmptyScope{At: full})
	}

	return scopeResult{Target: target, Branches: result, Slice: full}, warnings, nil
}

// singleInstruction validates that a branch holds exactly one
// instruction (used where a single definition-or-expression is
// required, e.g. struct/array literal entries) and returns it.
func singleInstruction(branch []ast.Instruction) (ast.Instruction, bool) {
	if len(branch) != 1 {
		return nil, false
	}
	return branch[0], true
}

// singleExpression validates that a branch is exactly one ValueOf-wrapped
// expression, as required for call arguments, and returns that expression.
func singleExpression(branch []ast.Instruction) (ast.Expression, bool) {
	instr, ok := singleInstruction(branch)
	if !ok {
		return nil, false
	}
	v, ok := instr.(*ast.ValueOf)
	if !ok {
		return nil, false
	}
	return v.Expr, true
}
