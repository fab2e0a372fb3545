package expr

import (
	"github.com/pkg/errors"

	"github.com/wayfarer-tools/findx/match"
)

// isCommandTerminator reports whether tok ends a command list for -exec,
// -execdir, -ok, and -okdir.
func isCommandTerminator(tok string) bool {
	return tok == ";" || tok == "+"
}

// parsePrimary consumes one primary (test or action) and its operands
// starting at the parser's current position, which must point at a token
// beginning with '-'.
func (p *parser) parsePrimary() (*Node, error) {
	name, ok := p.peek()
	if !ok {
		return nil, errors.New("expected a primary")
	}
	p.pos++

	switch name {
	case "-true":
		return &Node{Kind: KindTrue}, nil
	case "-false":
		return &Node{Kind: KindFalse}, nil
	case "-prune":
		return &Node{Kind: KindPrune}, nil
	case "-depth":
		return &Node{Kind: KindDepth}, nil
	case "-xdev", "-mount":
		return &Node{Kind: KindXdev}, nil
	case "-follow":
		return &Node{Kind: KindFollow}, nil
	case "-ignore_readdir_race":
		return &Node{Kind: KindIgnoreReaddirRace}, nil
	case "-noignore_readdir_race":
		return &Node{Kind: KindNoignoreReaddirRace}, nil
	case "-quit":
		return &Node{Kind: KindQuit}, nil
	case "-print":
		return &Node{Kind: KindPrint}, nil
	case "-print0":
		return &Node{Kind: KindPrint0}, nil
	case "-ls":
		return &Node{Kind: KindLs}, nil
	case "-delete":
		return &Node{Kind: KindDelete}, nil
	case "-readable":
		return &Node{Kind: KindReadable}, nil
	case "-writable":
		return &Node{Kind: KindWritable}, nil
	case "-executable":
		return &Node{Kind: KindExecutable}, nil
	case "-nouser":
		return &Node{Kind: KindNouser}, nil
	case "-nogroup":
		return &Node{Kind: KindNogroup}, nil
	case "-empty":
		return &Node{Kind: KindEmpty}, nil

	case "-name", "-iname":
		return p.parsePatternPrimary(name, KindName, KindIname)
	case "-path", "-ipath":
		return p.parsePatternPrimary(name, KindPath, KindIpath)
	case "-lname", "-ilname":
		return p.parsePatternPrimary(name, KindLname, KindIlname)
	case "-regex", "-iregex":
		return p.parseRegexPrimary(name)

	case "-maxdepth":
		return p.parseDepthPrimary(KindMaxdepth)
	case "-mindepth":
		return p.parseDepthPrimary(KindMindepth)

	case "-type":
		return p.parseStringOperandPrimary(KindType)
	case "-xtype":
		return p.parseStringOperandPrimary(KindXtype)
	case "-fstype":
		return p.parseStringOperandPrimary(KindFstype)
	case "-context":
		return p.parseStringOperandPrimary(KindContext)
	case "-user":
		return p.parseStringOperandPrimary(KindUser)
	case "-group":
		return p.parseStringOperandPrimary(KindGroup)

	case "-size":
		return p.parseSizePrimary()
	case "-perm":
		return p.parsePermPrimary()

	case "-links":
		return p.parseNumericPrimary(KindLinks)
	case "-inum":
		return p.parseNumericPrimary(KindInum)
	case "-uid":
		return p.parseNumericPrimary(KindUid)
	case "-gid":
		return p.parseNumericPrimary(KindGid)
	case "-used":
		return p.parseNumericPrimary(KindUsed)
	case "-mtime":
		return p.parseNumericPrimary(KindMtime)
	case "-atime":
		return p.parseNumericPrimary(KindAtime)
	case "-ctime":
		return p.parseNumericPrimary(KindCtime)
	case "-mmin":
		return p.parseNumericPrimary(KindMmin)
	case "-amin":
		return p.parseNumericPrimary(KindAmin)
	case "-cmin":
		return p.parseNumericPrimary(KindCmin)

	case "-newer":
		return p.parsePathOperandPrimary(KindNewer)
	case "-anewer":
		return p.parsePathOperandPrimary(KindAnewer)
	case "-cnewer":
		return p.parsePathOperandPrimary(KindCnewer)
	case "-samefile":
		return p.parsePathOperandPrimary(KindSamefile)

	case "-printf":
		return p.parseFormatPrimary(KindPrintf)
	case "-fprintf":
		return p.parseFprintfPrimary()
	case "-fprint":
		return p.parsePathOperandPrimary(KindFprint)
	case "-fprint0":
		return p.parsePathOperandPrimary(KindFprint0)
	case "-fls":
		return p.parsePathOperandPrimary(KindFls)

	case "-exec":
		return p.parseCommandPrimary(KindExec)
	case "-execdir":
		return p.parseCommandPrimary(KindExecdir)
	case "-ok":
		return p.parseCommandPrimary(KindOk)
	case "-okdir":
		return p.parseCommandPrimary(KindOkdir)
	}

	return nil, errors.Errorf("unknown primary %q", name)
}

func (p *parser) nextOperand(primary string) (string, error) {
	if p.pos >= len(p.args) {
		return "", errors.Errorf("%s requires an argument", primary)
	}
	arg := p.args[p.pos]
	p.pos++
	return arg, nil
}

func (p *parser) parsePatternPrimary(primary string, plain, folded Kind) (*Node, error) {
	pattern, err := p.nextOperand(primary)
	if err != nil {
		return nil, err
	}
	kind := plain
	fold := false
	if primary[1] == 'i' {
		kind = folded
		fold = true
	}
	if err := match.ValidateGlob(pattern); err != nil {
		return nil, errors.Wrapf(err, "invalid pattern for %s", primary)
	}
	return &Node{Kind: kind, Pattern: pattern, FoldCase: fold}, nil
}

func (p *parser) parseRegexPrimary(primary string) (*Node, error) {
	pattern, err := p.nextOperand(primary)
	if err != nil {
		return nil, err
	}
	kind := KindRegex
	fold := primary == "-iregex"
	if fold {
		kind = KindIregex
	}
	compiled, err := match.Regex(pattern, p.config.RegexDialect, fold)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern for %s", primary)
	}
	return &Node{Kind: kind, Pattern: pattern, FoldCase: fold, CompiledRegex: compiled}, nil
}

func (p *parser) parseDepthPrimary(kind Kind) (*Node, error) {
	operand, err := p.nextOperand("-maxdepth/-mindepth")
	if err != nil {
		return nil, err
	}
	comparison, err := parseNumericComparison(operand)
	if err != nil || comparison.Mode != NumericExact {
		return nil, errors.New("depth operand must be a plain non-negative integer")
	}
	return &Node{Kind: kind, Numeric: comparison}, nil
}

func (p *parser) parseStringOperandPrimary(kind Kind) (*Node, error) {
	operand, err := p.nextOperand("primary")
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: kind, StringOperand: operand}
	if kind == KindType || kind == KindXtype {
		n.TypeLetters = operand
	}
	return n, nil
}

func (p *parser) parseNumericPrimary(kind Kind) (*Node, error) {
	operand, err := p.nextOperand("primary")
	if err != nil {
		return nil, err
	}
	comparison, err := parseNumericComparison(operand)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: kind, Numeric: comparison}, nil
}

func (p *parser) parsePathOperandPrimary(kind Kind) (*Node, error) {
	operand, err := p.nextOperand("primary")
	if err != nil {
		return nil, err
	}
	return &Node{Kind: kind, PathOperand: operand}, nil
}

func (p *parser) parseFormatPrimary(kind Kind) (*Node, error) {
	operand, err := p.nextOperand("-printf")
	if err != nil {
		return nil, err
	}
	format, err := CompileFormat(operand)
	if err != nil {
		return nil, errors.Wrap(err, "invalid -printf format")
	}
	return &Node{Kind: kind, Format: format}, nil
}

func (p *parser) parseFprintfPrimary() (*Node, error) {
	path, err := p.nextOperand("-fprintf")
	if err != nil {
		return nil, err
	}
	formatText, err := p.nextOperand("-fprintf")
	if err != nil {
		return nil, err
	}
	format, err := CompileFormat(formatText)
	if err != nil {
		return nil, errors.Wrap(err, "invalid -fprintf format")
	}
	return &Node{Kind: KindFprintf, PathOperand: path, Format: format}, nil
}

func (p *parser) parseSizePrimary() (*Node, error) {
	operand, err := p.nextOperand("-size")
	if err != nil {
		return nil, err
	}
	unit := byte('b')
	if n := len(operand); n > 0 {
		switch operand[n-1] {
		case 'c', 'w', 'b', 'k', 'M', 'G':
			unit = operand[n-1]
			operand = operand[:n-1]
		}
	}
	comparison, err := parseNumericComparison(operand)
	if err != nil {
		return nil, errors.Wrap(err, "invalid -size operand")
	}
	return &Node{Kind: KindSize, Numeric: comparison, SizeUnit: unit}, nil
}

func (p *parser) parsePermPrimary() (*Node, error) {
	operand, err := p.nextOperand("-perm")
	if err != nil {
		return nil, err
	}
	return &Node{Kind: KindPerm, PermText: operand}, nil
}

func (p *parser) parseCommandPrimary(kind Kind) (*Node, error) {
	var command []string
	batches := false
	for {
		if p.pos >= len(p.args) {
			return nil, errors.New("-exec/-execdir/-ok/-okdir command must be terminated with ';' or '+'")
		}
		tok := p.args[p.pos]
		if isCommandTerminator(tok) {
			if tok == "+" {
				if kind != KindExec && kind != KindExecdir {
					return nil, errors.New("'+' terminator is only valid for -exec/-execdir")
				}
				batches = true
			}
			p.pos++
			break
		}
		command = append(command, tok)
		p.pos++
	}
	if len(command) == 0 {
		return nil, errors.New("-exec/-execdir/-ok/-okdir requires a command")
	}
	return &Node{Kind: kind, Command: command, CommandBatches: batches}, nil
}
