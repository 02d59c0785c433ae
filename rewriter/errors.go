package rewriter

import "github.com/oxhq/morfx/morfxerr"

func missingParserErr() error {
	return morfxerr.MissingPrecondition("rewriter: RewriteWithTree needs a parser, none supplied and none inferable from the tree")
}
