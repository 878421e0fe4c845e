package severity

import "fmt"

// Level is an ordinal risk level of a detected change
type Level int

const (
	None Level = iota
	Low
	Medium
	High
)

var levelNames = [...]string{"none", "low", "medium", "high"}

// Levels returns all levels in ascending order
func Levels() []Level {
	return []Level{None, Low, Medium, High}
}

func (l Level) String() string {
	if l < None || l > High {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText encodes level as its name
func (l Level) MarshalText() ([]byte, error) {
	if l < None || l > High {
		return nil, fmt.Errorf("invalid severity level: %d", int(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText decodes level name
func (l *Level) UnmarshalText(text []byte) error {
	level, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// ParseLevel parses level name
func ParseLevel(name string) (Level, error) {
	for i, candidate := range levelNames {
		if candidate == name {
			return Level(i), nil
		}
	}
	return None, fmt.Errorf("unknown severity level: %q", name)
}

// Reason explains a member modification level
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonPresence   Reason = "presence"
	ReasonSignature  Reason = "signature"
	ReasonFormatting Reason = "formatting"
	ReasonComment    Reason = "comment"
	ReasonLogic      Reason = "logic"
)
