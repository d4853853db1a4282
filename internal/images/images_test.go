package images

import "testing"

func seq(names ...string) *Sequence {
	imgs := make([]Image, len(names))
	for i, n := range names {
		imgs[i] = Image{Name: n}
	}
	s := &Sequence{}
	s.SetImages(imgs)
	return s
}

func TestSetImagesResetsCursor(t *testing.T) {
	s := seq("a.jpg", "b.jpg", "c.jpg")
	s.Next()
	s.Next()
	if s.Index() != 2 {
		t.Fatalf("Index() = %d, want 2", s.Index())
	}
	s.SetImages([]Image{{Name: "x.jpg"}})
	if s.Index() != 0 {
		t.Fatalf("Index() = %d after SetImages, want 0", s.Index())
	}
}

func TestNextClampsAtEnd(t *testing.T) {
	s := seq("a.jpg", "b.jpg")
	if !s.Next() {
		t.Fatal("Next() = false, want true")
	}
	if s.Next() {
		t.Fatal("Next() moved past the last image")
	}
	if s.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", s.Index())
	}
}

func TestPrevClampsAtStart(t *testing.T) {
	s := seq("a.jpg", "b.jpg")
	if s.Prev() {
		t.Fatal("Prev() moved before the first image")
	}
	s.Next()
	if !s.Prev() {
		t.Fatal("Prev() = false, want true")
	}
	if s.Index() != 0 {
		t.Fatalf("Index() = %d, want 0", s.Index())
	}
}

func TestCurrentOnEmptySequence(t *testing.T) {
	s := &Sequence{}
	if _, ok := s.Current(); ok {
		t.Fatal("Current() ok = true for empty sequence")
	}
	if s.Next() || s.Prev() {
		t.Fatal("Next/Prev moved on empty sequence")
	}
}

func TestSetIndexRejectsOutOfRange(t *testing.T) {
	s := seq("a.jpg", "b.jpg")
	if s.SetIndex(2) {
		t.Fatal("SetIndex(2) accepted out-of-range index")
	}
	if s.SetIndex(-1) {
		t.Fatal("SetIndex(-1) accepted negative index")
	}
	if !s.SetIndex(1) {
		t.Fatal("SetIndex(1) rejected valid index")
	}
}

func TestIsImageFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"receipt.jpg", true},
		{"receipt.JPEG", true},
		{"receipt.webp", true},
		{"notes.txt", false},
		{"receipt", false},
	}
	for _, tc := range cases {
		if got := IsImageFile(tc.name); got != tc.want {
			t.Fatalf("IsImageFile(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
