package severity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/symdiff/severity"
	"gopkg.in/yaml.v3"
)

func TestModification(t *testing.T) {
	var testCases = []struct {
		description      string
		signatureChanged bool
		before           string
		after            string
		expectLevel      severity.Level
		expectReason     severity.Reason
	}{
		{description: "identical", before: "return 1;", after: "return 1;", expectLevel: severity.None},
		{description: "cosmetic only", before: "  return 1;  ", after: "return 1;", expectLevel: severity.Low, expectReason: severity.ReasonFormatting},
		{description: "comment only", before: "// note\nreturn 1;", after: "return 1;", expectLevel: severity.Low, expectReason: severity.ReasonComment},
		{description: "block comment", before: "a := 1 /* tmp */ + 2", after: "a := 1 + 2", expectLevel: severity.Low, expectReason: severity.ReasonComment},
		{description: "comment marker inside string", before: `s := "http://x"`, after: `s := "http:"`, expectLevel: severity.Medium, expectReason: severity.ReasonLogic},
		{description: "logic", before: "return 1;", after: "return 2;", expectLevel: severity.Medium, expectReason: severity.ReasonLogic},
		{description: "signature", signatureChanged: true, before: "return 1;", after: "return 1;", expectLevel: severity.High, expectReason: severity.ReasonSignature},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			level, reason := severity.Modification(testCase.signatureChanged, testCase.before, testCase.after)
			assert.Equal(t, testCase.expectLevel, level)
			assert.Equal(t, testCase.expectReason, reason)
			again, _ := severity.Modification(testCase.signatureChanged, testCase.before, testCase.after)
			assert.Equal(t, level, again)
		})
	}
}

func TestPresence(t *testing.T) {
	assert.Equal(t, severity.High, severity.Presence(true))
	assert.Equal(t, severity.Medium, severity.Presence(false))
}

func TestAggregate_Monotonic(t *testing.T) {
	assert.Equal(t, severity.None, severity.Aggregate())
	levels := []severity.Level{severity.Low, severity.Medium, severity.Low}
	aggregate := severity.Aggregate(levels...)
	assert.Equal(t, severity.Medium, aggregate)
	for _, extra := range severity.Levels() {
		next := severity.Aggregate(append(levels, extra)...)
		assert.GreaterOrEqual(t, int(next), int(aggregate))
		assert.GreaterOrEqual(t, int(next), int(extra))
	}
}

func TestNode(t *testing.T) {
	assert.Equal(t, severity.High, severity.Node(nil, false, true))
	assert.Equal(t, severity.High, severity.Node([]severity.Level{severity.Low}, true, false))
	assert.Equal(t, severity.Low, severity.Node([]severity.Level{severity.Low, severity.None}, false, false))
	assert.Equal(t, severity.None, severity.Node(nil, false, false))
}

func TestLevel_Text(t *testing.T) {
	data, err := yaml.Marshal(map[string]severity.Level{"level": severity.Medium})
	require.NoError(t, err)
	assert.Equal(t, "level: medium\n", string(data))

	var decoded map[string]severity.Level
	require.NoError(t, yaml.Unmarshal([]byte("level: high\n"), &decoded))
	assert.Equal(t, severity.High, decoded["level"])

	_, err = severity.ParseLevel("critical")
	assert.Error(t, err)
}
