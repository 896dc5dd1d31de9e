package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTextFromBytesTeX(t *testing.T) {
	src := `\documentclass{article}\begin{document}Ada Lovelace\end{document}`
	text, err := TextFromBytes(context.Background(), []byte(src), "resume.tex")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "Ada Lovelace") {
		t.Fatalf("text = %q", text)
	}
}

func TestTextFromBytesEmptyTeX(t *testing.T) {
	if _, err := TextFromBytes(context.Background(), []byte("   \n"), "resume.tex"); !errors.Is(err, ErrNoText) {
		t.Fatalf("err = %v, want ErrNoText", err)
	}
}

func TestTextFromBytesUnsupported(t *testing.T) {
	if _, err := TextFromBytes(context.Background(), []byte("hello"), "resume.docx"); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestTextFromBytesBrokenPDF(t *testing.T) {
	if _, err := TextFromBytes(context.Background(), []byte("%PDF-1.7 truncated"), "resume.pdf"); err == nil {
		t.Fatal("expected error for truncated pdf")
	}
}
