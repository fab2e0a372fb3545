// Package expr implements the boolean expression language that find's
// command-line operands compile into: primaries (tests and actions),
// combined with the not/and/or/comma operators at their usual precedences.
package expr

import "regexp"

// Kind identifies the variety of a Node, in the same tagged-union style used
// throughout this codebase for small closed sets of variants: a Kind
// constant plus a flat struct of fields relevant to that kind, dispatched by
// a switch, rather than a family of types behind an interface.
type Kind uint

const (
	// KindAnd is a logical AND of two operands (implicit or explicit -a).
	KindAnd Kind = iota
	// KindOr is a logical OR of two operands (-o).
	KindOr
	// KindNot is a logical negation of one operand (! or -not).
	KindNot
	// KindComma evaluates Left, discards its result, then evaluates and
	// returns Right's result (the ',' operator).
	KindComma

	// Tests.
	KindName
	KindIname
	KindPath
	KindIpath
	KindLname
	KindIlname
	KindRegex
	KindIregex
	KindType
	KindXtype
	KindSize
	KindEmpty
	KindTrue
	KindFalse
	KindNewer
	KindAnewer
	KindCnewer
	KindMtime
	KindAtime
	KindCtime
	KindMmin
	KindAmin
	KindCmin
	KindUsed
	KindPerm
	KindUser
	KindUid
	KindGroup
	KindGid
	KindNouser
	KindNogroup
	KindInum
	KindLinks
	KindSamefile
	KindReadable
	KindWritable
	KindExecutable
	KindContext
	KindFstype

	// Structural/positional primaries.
	KindPrune
	KindDepth
	KindMaxdepth
	KindMindepth
	KindXdev
	// KindFollow, KindIgnoreReaddirRace, and KindNoignoreReaddirRace are
	// global-option primaries that may appear anywhere in the expression
	// (GNU find accepts them both as leading options and as ordinary
	// primaries). Each always evaluates true; their effect is recorded into
	// Config by extractDepthBounds rather than acted on at evaluation time.
	KindFollow
	KindIgnoreReaddirRace
	KindNoignoreReaddirRace

	// Actions.
	KindPrint
	KindPrint0
	KindFprint
	KindFprint0
	KindPrintf
	KindFprintf
	KindLs
	KindFls
	KindDelete
	KindExec
	KindExecdir
	KindOk
	KindOkdir
	KindQuit
)

// Node is one node of a parsed expression tree. It's intentionally flat:
// every field below is meaningful for some subset of Kind values, and unused
// fields for a given Kind are simply left zero-valued.
type Node struct {
	// Kind identifies the node's variant.
	Kind Kind

	// Left and Right are operand subtrees for KindAnd/KindOr, and Left alone
	// is the operand subtree for KindNot.
	Left  *Node
	Right *Node

	// Pattern is the glob/regex source text for name/path/regex-family
	// tests.
	Pattern string
	// FoldCase indicates a case-insensitive variant (the "i" prefixed
	// primaries: -iname, -ipath, -ilname, -iregex).
	FoldCase bool
	// CompiledRegex is populated for the regex-family tests during parsing.
	CompiledRegex *regexp.Regexp

	// Numeric holds a parsed [+-]N comparison operand for size/time/
	// link-count/user-id/group-id tests.
	Numeric NumericComparison

	// TypeLetters holds the requested type letters for -type/-xtype
	// (comma-separated in the original argument, e.g. "f,d").
	TypeLetters string

	// SizeUnit holds the unit suffix for -size (c, w, b, k, M, G).
	SizeUnit byte

	// PermText holds the raw -perm operand text (used to support the exact,
	// -mode, and /mode forms uniformly during evaluation).
	PermText string

	// StringOperand holds a generic string operand for tests/actions taking
	// a single string argument (-type, -xtype, -user, -group, -fstype,
	// -context).
	StringOperand string

	// PathOperand holds a filesystem path operand (-newerXY references,
	// -fprint/-fprintf/-fls output file paths, -samefile's reference path).
	PathOperand string

	// Format holds a compiled -printf/-fprintf format string.
	Format *Format

	// Command holds the argument vector for -exec/-execdir/-ok/-okdir,
	// excluding the trailing terminator.
	Command []string
	// CommandBatches is true if the primary was terminated with "+" (batch
	// mode, -exec/-execdir only) rather than ";" (one invocation per match).
	CommandBatches bool
}

// NumericComparison represents a parsed [+-]N numeric test operand, as used
// by -size, -links, -inum, -uid, -gid, -used, and the -*time/-*min family.
type NumericComparison struct {
	// Mode selects exact, greater-than, or less-than comparison.
	Mode NumericMode
	// Value is the comparison operand.
	Value int64
}

// NumericMode identifies the comparison direction of a NumericComparison.
type NumericMode int

const (
	// NumericExact requires the probed value to equal Value exactly.
	NumericExact NumericMode = iota
	// NumericGreater requires the probed value to be strictly greater than
	// Value (a "+N" operand).
	NumericGreater
	// NumericLess requires the probed value to be strictly less than Value
	// (a "-N" operand).
	NumericLess
)

// NewAnd constructs a KindAnd node.
func NewAnd(left, right *Node) *Node {
	return &Node{Kind: KindAnd, Left: left, Right: right}
}

// NewOr constructs a KindOr node.
func NewOr(left, right *Node) *Node {
	return &Node{Kind: KindOr, Left: left, Right: right}
}

// NewNot constructs a KindNot node.
func NewNot(operand *Node) *Node {
	return &Node{Kind: KindNot, Left: operand}
}
