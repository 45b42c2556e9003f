package tui

import "testing"

func TestWrapTextBreaksOnSpaces(t *testing.T) {
	got := wrapText("une interface claire aide", 10)
	want := "une\ninterface\nclaire\naide"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapTextKeepsParagraphs(t *testing.T) {
	got := wrapText("abc def\nghi\n", 20)
	if got != "abc def\nghi" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

func TestWrapTextHardBreaksLongWords(t *testing.T) {
	got := wrapText("abcdefgh", 3)
	if got != "abc\ndef\ngh" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

func TestWrapTextCountsWideRunes(t *testing.T) {
	got := wrapText("日本語 ok", 6)
	if got != "日本語\nok" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

func TestWrapTextNoWidth(t *testing.T) {
	if got := wrapText("a b c", 0); got != "a b c" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestWrapTextKeepsBlankLinesAndCollapsesSpaces(t *testing.T) {
	got := wrapText("a  b\n\nc", 10)
	if got != "a b\n\nc" {
		t.Fatalf("unexpected wrap %q", got)
	}
}

func TestSplitAtWidthWideRunes(t *testing.T) {
	got := splitAtWidth("日本語", 3)
	if len(got) != 3 || got[0] != "日" || got[2] != "語" {
		t.Fatalf("unexpected chunks %q", got)
	}
}
