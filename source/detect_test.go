package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPDF, "PDF"},
		{KindDocument, "JSON"},
		{KindUnknown, "Unknown"},
		{Kind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Kind
	}{
		{"pdf", []byte("%PDF-1.7\n"), KindPDF},
		{"json", []byte(`{"pages": []}`), KindDocument},
		{"json with leading whitespace", []byte("\n  {\"pages\": []}"), KindDocument},
		{"too short", []byte("%P"), KindUnknown},
		{"empty", nil, KindUnknown},
		{"zip", []byte{0x50, 0x4B, 0x03, 0x04}, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPDF(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "upload.bin")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4\n%%EOF\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	textPath := filepath.Join(dir, "notes.pdf")
	if err := os.WriteFile(textPath, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if ok, err := IsPDF(pdfPath); err != nil || !ok {
		t.Errorf("IsPDF(%q) = %v, %v, want true", pdfPath, ok, err)
	}
	if ok, err := IsPDF(textPath); err != nil || ok {
		t.Errorf("IsPDF(%q) = %v, %v, want false", textPath, ok, err)
	}
	if _, err := IsPDF(filepath.Join(dir, "missing")); err == nil {
		t.Error("IsPDF() should fail for a missing file")
	}
}

func TestPageSize_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\ngarbage"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, _, err := PageSize(path, 1); err == nil {
		t.Error("PageSize() should fail for a malformed PDF")
	}
	if _, err := OpenPDF(path, nil); err == nil {
		t.Error("OpenPDF() should fail for a malformed PDF")
	}
}
