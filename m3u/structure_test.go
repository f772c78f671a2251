package m3u

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
	"gopkg.in/yaml.v3"
)

func TestSeverityText(t *testing.T) {
	is := is.New(t)
	is.Equal(WARNING.String(), "WARNING")
	is.Equal(ERROR.String(), "ERROR")
	is.Equal(Severity(0).String(), "Unknown")

	var s Severity
	is.NoErr(s.UnmarshalText([]byte("ERROR")))
	is.Equal(s, ERROR)
	is.True(s.UnmarshalText([]byte("FATAL")) != nil) // unknown severity
}

func TestProblemEncoding(t *testing.T) {
	is := is.New(t)
	p := Problem{Severity: WARNING, Message: "Empty directive on line 3", Line: 3}
	is.Equal(p.String(), "WARNING: Empty directive on line 3")

	b, err := json.Marshal(p)
	is.NoErr(err)
	is.Equal(string(b), `{"severity":"WARNING","message":"Empty directive on line 3","line":3}`)

	var back Problem
	is.NoErr(json.Unmarshal(b, &back))
	is.Equal(back, p)

	y, err := yaml.Marshal(Problem{Severity: ERROR, Message: "File reading error"})
	is.NoErr(err)
	is.Equal(string(y), "severity: ERROR\nmessage: File reading error\n") // line 0 is omitted
}

func TestResultSummary(t *testing.T) {
	is := is.New(t)
	res := &ParsingResult{}
	is.Equal(res.Worst(), Severity(0))
	is.True(!res.HasErrors())
	is.True(!res.HasWarnings())

	res.Problems = []Problem{
		{Severity: WARNING, Message: "a"},
		{Severity: WARNING, Message: "b"},
	}
	is.Equal(res.Count(WARNING), 2)
	is.Equal(res.Worst(), WARNING)
	is.True(!res.HasErrors())

	res.Problems = append(res.Problems, Problem{Severity: ERROR, Message: "File reading error"})
	is.Equal(res.Count(ERROR), 1)
	is.Equal(res.Worst(), ERROR)
	is.True(res.HasErrors())
	is.True(res.HasWarnings())
}
