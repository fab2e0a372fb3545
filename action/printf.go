package action

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/wayfarer-tools/findx/eval"
	"github.com/wayfarer-tools/findx/expr"
)

// renderFormat writes a compiled -printf/-fprintf format applied to entry
// to w.
func renderFormat(w io.Writer, format *expr.Format, entry *eval.Entry) error {
	for _, segment := range format.Segments {
		var text string
		switch segment.Kind {
		case expr.FormatLiteral:
			text = segment.Literal
		case expr.FormatDirective:
			text = renderDirective(segment, entry)
			if segment.Width != "" {
				text = fmt.Sprintf("%"+segment.Width+"s", text)
			}
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}

// renderDirective computes the replacement text for one %-directive against
// entry's metadata.
func renderDirective(segment expr.FormatSegment, entry *eval.Entry) string {
	m := entry.Metadata
	switch segment.Directive {
	case 'p':
		return entry.Path
	case 'f':
		return entry.Name
	case 'h':
		return parentOf(entry.Path)
	case 'P':
		return entry.RelativePath
	case 'd':
		return strconv.Itoa(entry.Depth)
	case 'l':
		return m.LinkTarget
	case 'y':
		return typeLetter(m)
	case 'Y':
		return typeLetter(m)
	case 's':
		return strconv.FormatInt(m.Size, 10)
	case 'b':
		return strconv.FormatInt((m.Size+511)/512, 10)
	case 'g':
		return eval.GroupName(m.GID)
	case 'G':
		return strconv.FormatUint(uint64(m.GID), 10)
	case 'u':
		return eval.UserName(m.UID)
	case 'U':
		return strconv.FormatUint(uint64(m.UID), 10)
	case 'm':
		return fmt.Sprintf("%o", uint32(m.Mode.Perm()))
	case 'M':
		return m.Mode.String()
	case 'i':
		return strconv.FormatUint(m.Inode, 10)
	case 'n':
		return strconv.FormatUint(m.Links, 10)
	case 'k':
		return strconv.FormatInt((m.Size+1023)/1024, 10)
	case 'F':
		return "unknown"
	case 'A':
		return renderTime(m.AccessTime, segment.SubDirective)
	case 'T':
		return renderTime(m.ModTime, segment.SubDirective)
	case 'C':
		return renderTime(m.ChangeTime, segment.SubDirective)
	}
	return ""
}

func parentOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			if i == 0 {
				return "/"
			}
			return path[:i]
		}
	}
	return "."
}

func typeLetter(m interface {
	IsDir() bool
	IsSymlink() bool
}) string {
	switch {
	case m.IsDir():
		return "d"
	case m.IsSymlink():
		return "l"
	default:
		return "f"
	}
}

// renderTime renders a time.Time according to a %A/%T/%C sub-directive.
func renderTime(t time.Time, sub byte) string {
	switch sub {
	case '@':
		if t.Nanosecond() != 0 {
			return fmt.Sprintf("%d.%09d", t.Unix(), t.Nanosecond())
		}
		return strconv.FormatInt(t.Unix(), 10)
	case 'Y':
		return strconv.Itoa(t.Year())
	case 'm':
		return fmt.Sprintf("%02d", int(t.Month()))
	case 'd':
		return fmt.Sprintf("%02d", t.Day())
	case 'H':
		return fmt.Sprintf("%02d", t.Hour())
	case 'M':
		return fmt.Sprintf("%02d", t.Minute())
	case 'S':
		return fmt.Sprintf("%02d", t.Second())
	default:
		return t.Format(time.RFC3339)
	}
}
