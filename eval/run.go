package eval

import (
	"os"
	"strings"

	"github.com/wayfarer-tools/findx/expr"
	"github.com/wayfarer-tools/findx/filesystem"
)

// secondsPerDay is used to convert -mtime/-atime/-ctime day counts into
// durations for comparison against elapsed time.
const secondsPerDay = 24 * 60 * 60

// Run evaluates tree against entry, invoking any action primaries it
// contains through sinks. It returns the boolean result of the expression
// and any control-flow Signal raised along the way (-prune, -quit).
//
// Evaluation short-circuits: the right operand of an AND is not evaluated if
// the left is false, and the right operand of an OR is not evaluated if the
// left is true, exactly mirroring find's documented semantics (and the
// consequence that an action primary placed after a short-circuited
// position simply does not run).
func Run(node *expr.Node, entry *Entry, sinks Sinks, now int64) (bool, Signal, error) {
	if node == nil {
		return true, SignalNone, nil
	}

	switch node.Kind {
	case expr.KindAnd:
		left, signal, err := Run(node.Left, entry, sinks, now)
		if err != nil || !left || signal == SignalQuit {
			return left, signal, err
		}
		right, rsignal, err := Run(node.Right, entry, sinks, now)
		return left && right, combineSignal(signal, rsignal), err

	case expr.KindOr:
		left, signal, err := Run(node.Left, entry, sinks, now)
		if err != nil || left || signal == SignalQuit {
			return left, signal, err
		}
		right, rsignal, err := Run(node.Right, entry, sinks, now)
		return left || right, combineSignal(signal, rsignal), err

	case expr.KindNot:
		result, signal, err := Run(node.Left, entry, sinks, now)
		return !result, signal, err

	case expr.KindComma:
		_, lsignal, err := Run(node.Left, entry, sinks, now)
		if err != nil || lsignal == SignalQuit {
			return false, lsignal, err
		}
		result, rsignal, err := Run(node.Right, entry, sinks, now)
		return result, combineSignal(lsignal, rsignal), err

	case expr.KindTrue:
		return true, SignalNone, nil
	case expr.KindFalse:
		return false, SignalNone, nil

	case expr.KindPrune:
		return true, SignalPrune, nil
	case expr.KindDepth:
		return true, SignalNone, nil
	case expr.KindXdev:
		return true, SignalNone, nil
	case expr.KindFollow, expr.KindIgnoreReaddirRace, expr.KindNoignoreReaddirRace:
		return true, SignalNone, nil
	case expr.KindQuit:
		return true, SignalQuit, nil
	case expr.KindMaxdepth:
		return entry.Depth <= int(node.Numeric.Value), SignalNone, nil
	case expr.KindMindepth:
		return entry.Depth >= int(node.Numeric.Value), SignalNone, nil

	case expr.KindName:
		return matchName(node, entry.Name)
	case expr.KindIname:
		return matchName(node, entry.Name)
	case expr.KindPath:
		return matchName(node, entry.Path)
	case expr.KindIpath:
		return matchName(node, entry.Path)
	case expr.KindLname:
		return matchLname(node, entry)
	case expr.KindIlname:
		return matchLname(node, entry)
	case expr.KindRegex, expr.KindIregex:
		return node.CompiledRegex.MatchString(entry.Path), SignalNone, nil

	case expr.KindType:
		return matchType(node.TypeLetters, entry.Metadata), SignalNone, nil
	case expr.KindXtype:
		return matchType(node.TypeLetters, xtypeMetadata(entry)), SignalNone, nil
	case expr.KindFstype:
		return true, SignalNone, nil

	case expr.KindSize:
		return evalSize(node, entry), SignalNone, nil
	case expr.KindEmpty:
		return evalEmpty(entry), SignalNone, nil

	case expr.KindNewer:
		return evalNewer(node.PathOperand, entry.Metadata.ModTime.Unix()), SignalNone, nil
	case expr.KindAnewer:
		return evalNewer(node.PathOperand, entry.Metadata.AccessTime.Unix()), SignalNone, nil
	case expr.KindCnewer:
		return evalNewer(node.PathOperand, entry.Metadata.ChangeTime.Unix()), SignalNone, nil

	case expr.KindMtime:
		return node.Numeric.Matches(ageInDays(entry.Metadata.ModTime.Unix(), now)), SignalNone, nil
	case expr.KindAtime:
		return node.Numeric.Matches(ageInDays(entry.Metadata.AccessTime.Unix(), now)), SignalNone, nil
	case expr.KindCtime:
		return node.Numeric.Matches(ageInDays(entry.Metadata.ChangeTime.Unix(), now)), SignalNone, nil
	case expr.KindMmin:
		return node.Numeric.Matches(ageInMinutes(entry.Metadata.ModTime.Unix(), now)), SignalNone, nil
	case expr.KindAmin:
		return node.Numeric.Matches(ageInMinutes(entry.Metadata.AccessTime.Unix(), now)), SignalNone, nil
	case expr.KindCmin:
		return node.Numeric.Matches(ageInMinutes(entry.Metadata.ChangeTime.Unix(), now)), SignalNone, nil
	case expr.KindUsed:
		return node.Numeric.Matches(ageInDays(entry.Metadata.AccessTime.Unix(), entry.Metadata.ChangeTime.Unix())), SignalNone, nil

	case expr.KindPerm:
		return matchPerm(node.PermText, entry.Metadata.Mode), SignalNone, nil

	case expr.KindUser:
		return matchUserName(node.StringOperand, entry.Metadata.UID), SignalNone, nil
	case expr.KindUid:
		return node.Numeric.Matches(int64(entry.Metadata.UID)), SignalNone, nil
	case expr.KindGroup:
		return matchGroupName(node.StringOperand, entry.Metadata.GID), SignalNone, nil
	case expr.KindGid:
		return node.Numeric.Matches(int64(entry.Metadata.GID)), SignalNone, nil
	case expr.KindNouser:
		return !userExists(entry.Metadata.UID), SignalNone, nil
	case expr.KindNogroup:
		return !groupExists(entry.Metadata.GID), SignalNone, nil

	case expr.KindInum:
		return node.Numeric.Matches(int64(entry.Metadata.Inode)), SignalNone, nil
	case expr.KindLinks:
		return node.Numeric.Matches(int64(entry.Metadata.Links)), SignalNone, nil
	case expr.KindSamefile:
		return evalSamefile(node.PathOperand, entry.Metadata), SignalNone, nil

	case expr.KindReadable:
		return filesystem.Access(entry.Path, filesystem.AccessRead), SignalNone, nil
	case expr.KindWritable:
		return filesystem.Access(entry.Path, filesystem.AccessWrite), SignalNone, nil
	case expr.KindExecutable:
		return filesystem.Access(entry.Path, filesystem.AccessExecute), SignalNone, nil
	case expr.KindContext:
		return true, SignalNone, nil

	case expr.KindPrint:
		return true, SignalNone, sinks.Print(entry.Path)
	case expr.KindPrint0:
		return true, SignalNone, sinks.Print0(entry.Path)
	case expr.KindFprint:
		return true, SignalNone, sinks.Fprint(node.PathOperand, entry.Path)
	case expr.KindFprint0:
		return true, SignalNone, sinks.Fprint0(node.PathOperand, entry.Path)
	case expr.KindPrintf:
		return true, SignalNone, sinks.Printf(node.Format, entry)
	case expr.KindFprintf:
		return true, SignalNone, sinks.Fprintf(node.PathOperand, node.Format, entry)
	case expr.KindLs:
		return true, SignalNone, sinks.Ls(entry)
	case expr.KindFls:
		return true, SignalNone, sinks.Fls(node.PathOperand, entry)
	case expr.KindDelete:
		ok, err := sinks.Delete(entry)
		return ok, SignalNone, err
	case expr.KindExec:
		ok, err := sinks.Exec(node, entry, false)
		return ok, SignalNone, err
	case expr.KindExecdir:
		ok, err := sinks.Exec(node, entry, true)
		return ok, SignalNone, err
	case expr.KindOk:
		ok, err := sinks.Ok(node.Command, entry, false)
		return ok, SignalNone, err
	case expr.KindOkdir:
		ok, err := sinks.Ok(node.Command, entry, true)
		return ok, SignalNone, err
	}

	return false, SignalNone, nil
}

// combineSignal prefers a quit signal over any other, and otherwise prefers
// whichever of the two signals is non-none.
func combineSignal(a, b Signal) Signal {
	if a == SignalQuit || b == SignalQuit {
		return SignalQuit
	}
	if a != SignalNone {
		return a
	}
	return b
}

func matchName(node *expr.Node, subject string) (bool, Signal, error) {
	matched, err := matchGlob(node, subject)
	return matched, SignalNone, err
}

func matchLname(node *expr.Node, entry *Entry) (bool, Signal, error) {
	if entry.Metadata == nil || entry.Metadata.LinkTarget == "" {
		return false, SignalNone, nil
	}
	matched, err := matchGlob(node, entry.Metadata.LinkTarget)
	return matched, SignalNone, err
}

func matchType(letters string, metadata *filesystem.Metadata) bool {
	for _, letter := range strings.Split(letters, ",") {
		switch strings.TrimSpace(letter) {
		case "f":
			if metadata.Mode.IsRegular() {
				return true
			}
		case "d":
			if metadata.Mode.IsDir() {
				return true
			}
		case "l":
			if metadata.IsSymlink() {
				return true
			}
		case "p":
			if metadata.Mode&os.ModeNamedPipe != 0 {
				return true
			}
		case "s":
			if metadata.Mode&os.ModeSocket != 0 {
				return true
			}
		case "b", "c":
			if metadata.Mode&os.ModeDevice != 0 {
				isChar := metadata.Mode&os.ModeCharDevice != 0
				if (letter == "c") == isChar {
					return true
				}
			}
		}
	}
	return false
}

// xtypeMetadata returns the metadata -xtype should test against: the type
// -type did not pick for this entry. resolveMetadata populates LinkMetadata
// exactly when the entry is a symlink and the opposite-policy probe
// succeeded, so -xtype simply prefers it over Metadata; a broken or
// unresolvable target leaves LinkMetadata nil, and -xtype falls back to
// reporting the entry as a link, matching find's own documented behavior.
func xtypeMetadata(entry *Entry) *filesystem.Metadata {
	if entry.LinkMetadata != nil {
		return entry.LinkMetadata
	}
	return entry.Metadata
}

func evalEmpty(entry *Entry) bool {
	if entry.Metadata.Mode.IsDir() {
		names, err := filesystem.DirectoryEntries(entry.Path)
		return err == nil && len(names) == 0
	}
	return entry.Metadata.Mode.IsRegular() && entry.Metadata.Size == 0
}

func evalNewer(referencePath string, subjectTime int64) bool {
	reference, err := filesystem.Probe(referencePath)
	if err != nil {
		return false
	}
	return subjectTime > reference.ModTime.Unix()
}

func evalSamefile(referencePath string, metadata *filesystem.Metadata) bool {
	reference, err := filesystem.Probe(referencePath)
	if err != nil {
		return false
	}
	return reference.Device == metadata.Device && reference.Inode == metadata.Inode
}

func ageInDays(subjectTime, now int64) int64 {
	delta := now - subjectTime
	if delta < 0 {
		delta = 0
	}
	return delta / secondsPerDay
}

func ageInMinutes(subjectTime, now int64) int64 {
	delta := now - subjectTime
	if delta < 0 {
		delta = 0
	}
	return delta / 60
}
