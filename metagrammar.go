package parsing

// The meta-grammar: a hand-constructed matcher graph that parses PEG
// grammar source text. It is built from the very same
// Matcher primitives it will eventually hand out to user grammars —
// the engine is self-describing. Cross-rule calls are expressed as
// Reference nodes and tied into a cyclic graph by ReferenceResolver,
// exactly the same resolver a compiled user Grammar uses.
//
// Internal nodes produced by compound sub-expressions are given the
// synthetic names GrammarGenerator dispatches on: primary__sequence,
// primary__parens, expression__zeroormore, expression__sequence,
// prefix__optional, suffix__optional, grammar__oneormore.

func named(name string, m Matcher) Matcher {
	m.setName(name)
	return m
}

func metaGrammarRules() []NamedMatcher {
	rule := func(name string, m Matcher) NamedMatcher {
		return NamedMatcher{Name: name, Matcher: named(name, m)}
	}

	return []NamedMatcher{
		// grammar <- spacing definition+
		rule("grammar", NewSequence(
			NewReference("spacing"),
			named("grammar__oneormore", NewOneOrMore(NewReference("definition"))),
		)),

		// definition <- identifier left_arrow expression
		rule("definition", NewSequence(
			NewReference("identifier"),
			NewReference("left_arrow"),
			NewReference("expression"),
		)),

		// expression <- sequence (slash sequence)*
		rule("expression", NewSequence(
			NewReference("sequence"),
			named("expression__zeroormore", NewZeroOrMore(
				named("expression__sequence", NewSequence(
					NewReference("slash"),
					NewReference("sequence"),
				)),
			)),
		)),

		// sequence <- prefix*
		rule("sequence", NewZeroOrMore(NewReference("prefix"))),

		// prefix <- (and / not)? suffix
		rule("prefix", NewSequence(
			named("prefix__optional", NewOptional(
				NewOr(NewReference("and"), NewReference("not")),
			)),
			NewReference("suffix"),
		)),

		// suffix <- primary (question / star / plus)?
		rule("suffix", NewSequence(
			NewReference("primary"),
			named("suffix__optional", NewOptional(
				NewOr(NewReference("question"), NewReference("star"), NewReference("plus")),
			)),
		)),

		// primary <- identifier !left_arrow
		//          / open expression close
		//          / literal / class / dot
		rule("primary", NewOr(
			named("primary__sequence", NewSequence(
				NewReference("identifier"),
				NewNot(NewReference("left_arrow")),
			)),
			named("primary__parens", NewSequence(
				NewReference("open"),
				NewReference("expression"),
				NewReference("close"),
			)),
			NewReference("literal"),
			NewReference("class"),
			NewReference("dot"),
		)),

		// identifier <- [A-Za-z0-9_]+ spacing
		rule("identifier", NewSequence(
			named("identifier__regex", NewRegex("[A-Za-z0-9_]+")),
			NewReference("spacing"),
		)),

		// literal <- ('...') / ("...") spacing — non-greedy, no embedded
		// escaped quotes, a deliberate simplification over full PEG.
		rule("literal", NewSequence(
			NewRegex(`'.*?'|".*?"`),
			NewReference("spacing"),
		)),

		// class <- '[' ... ']' spacing — non-greedy, forwarded verbatim
		// to the host regex engine.
		rule("class", NewSequence(
			NewRegex(`\[.*?\]`),
			NewReference("spacing"),
		)),

		// dot <- '.' spacing
		rule("dot", NewSequence(NewLiteral("."), NewReference("spacing"))),

		// and <- '&' spacing
		rule("and", NewSequence(NewLiteral("&"), NewReference("spacing"))),
		// not <- '!' spacing
		rule("not", NewSequence(NewLiteral("!"), NewReference("spacing"))),
		// slash <- '/' spacing
		rule("slash", NewSequence(NewLiteral("/"), NewReference("spacing"))),
		// left_arrow <- '<-' spacing
		rule("left_arrow", NewSequence(NewLiteral("<-"), NewReference("spacing"))),
		// question <- '?' spacing
		rule("question", NewSequence(NewLiteral("?"), NewReference("spacing"))),
		// star <- '*' spacing
		rule("star", NewSequence(NewLiteral("*"), NewReference("spacing"))),
		// plus <- '+' spacing
		rule("plus", NewSequence(NewLiteral("+"), NewReference("spacing"))),
		// open <- '(' spacing
		rule("open", NewSequence(NewLiteral("("), NewReference("spacing"))),
		// close <- ')' spacing
		rule("close", NewSequence(NewLiteral(")"), NewReference("spacing"))),

		// spacing <- (space / comment)*
		rule("spacing", NewZeroOrMore(NewOr(NewReference("space"), NewReference("comment")))),

		// comment <- '#' (!end_of_line .)* end_of_line
		rule("comment", NewSequence(
			NewLiteral("#"),
			NewZeroOrMore(NewSequence(NewNot(NewReference("end_of_line")), NewRegex("."))),
			NewReference("end_of_line"),
		)),

		// space <- ' ' / '\t' / end_of_line
		rule("space", NewOr(NewLiteral(" "), NewLiteral("\t"), NewReference("end_of_line"))),

		// end_of_line <- '\r\n' / '\n' / '\r'
		rule("end_of_line", NewOr(NewLiteral("\r\n"), NewLiteral("\n"), NewLiteral("\r"))),
	}
}

// buildMetaGrammar resolves metaGrammarRules into the executable
// matcher that parses PEG grammar source. Failure here is a defect in
// the engine itself, not a user-facing error, so it panics.
func buildMetaGrammar() Matcher {
	resolver := NewReferenceResolver(metaGrammarRules())
	root, err := resolver.Resolve()
	if err != nil {
		panic("parsing: meta-grammar failed to resolve: " + err.Error())
	}
	return root
}

var metaGrammar = buildMetaGrammar()
