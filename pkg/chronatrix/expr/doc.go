/*
Package expr implements the restricted condition language evaluated
against a context snapshot.

# Overview

expr parses a condition string into a closed set of syntax-tree nodes
and walks the tree to a boolean. The grammar is an allow-list: anything
outside it (assignment, attribute or index access, calls to unknown
names, statements) is rejected at parse time. Evaluation is total: a
condition string can never produce anything except true or false.

# Expression Syntax

	<expr>       := <or>
	<or>         := <and> ( 'or' <and> )*
	<and>        := <not> ( 'and' <not> )*
	<not>        := 'not' <not> | <comparison>
	<comparison> := <sum> ( <op> <sum> | 'is' ['not'] 'null' )?
	<op>         := '==' | '!=' | '<' | '<=' | '>' | '>='
	<sum>        := <term> ( ('+'|'-') <term> )*
	<term>       := <factor> ( ('*'|'/') <factor> )*
	<factor>     := '-' <factor> | <primary>
	<primary>    := number | 'string' | "string" | true | false | null
	              | identifier | call '(' args ')' | '(' <expr> ')'

# Allowed Calls

Only three function names exist, checked with their arity at parse
time:

	abs(x)       Absolute value of a numeric argument
	min(a, b)    Smaller of two numeric arguments
	max(a, b)    Larger of two numeric arguments

# Typing Rules

Comparisons are defined only between compatible kinds: numerics against
numerics, strings against strings, booleans against booleans, and
temporal values of the same kind. An incompatible comparison, including
any comparison against null except the 'is null' / 'is not null' forms,
evaluates to false. Arithmetic is defined only over numerics; division
by zero or a non-numeric operand yields an invalid sentinel that
collapses to false. 'and'/'or' short-circuit left to right and require
boolean operands. A tree whose final value is not a boolean evaluates
to false.

# Usage

	ok := expr.Eval("current_hour >= 18 and not is_weekend", ctx)

Unresolved variable names evaluate to null, so a typo in a condition
yields false, never an error.
*/
package expr
