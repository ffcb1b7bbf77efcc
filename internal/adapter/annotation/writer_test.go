package annotation_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/riff/internal/adapter/annotation"
	"github.com/bkyoung/riff/internal/domain"
)

func TestFormat(t *testing.T) {
	v := domain.Violation{
		ErrorCode:   "E501",
		Path:        "src/app.py",
		LineStart:   12,
		LineEnd:     12,
		ColumnStart: 89,
		ColumnEnd:   120,
		Message:     "Line too long (120 > 88 characters)",
		LinterName:  "Ruff",
	}

	want := "::error title=Ruff (E501),file=src/app.py,line=12,endLine=12,col=89,endColumn=120::Line too long (120 > 88 characters)"
	assert.Equal(t, want, annotation.Format(v))
}

func TestWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := annotation.NewWriter(&buf)

	err := w.Write([]domain.Violation{
		{ErrorCode: "E501", Path: "a.py", LineStart: 1, LineEnd: 1, ColumnStart: 2, ColumnEnd: 3, Message: "first", LinterName: "Ruff"},
		{ErrorCode: "F401", Path: "b.py", LineStart: 4, LineEnd: 4, ColumnStart: 5, ColumnEnd: 6, Message: "second", LinterName: "Ruff"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"::error title=Ruff (E501),file=a.py,line=1,endLine=1,col=2,endColumn=3::first\n"+
			"::error title=Ruff (F401),file=b.py,line=4,endLine=4,col=5,endColumn=6::second\n",
		buf.String())
}
