package uniformcatalog

import "testing"

func TestLookupKnownAndUnknown(t *testing.T) {
	if _, ok := Lookup("iResolution"); !ok {
		t.Error("expected iResolution to be recognized")
	}
	if _, ok := Lookup("iNotAThing"); ok {
		t.Error("expected iNotAThing to be unrecognized")
	}
}

func TestEncodeMouseSignConvention(t *testing.T) {
	got := EncodeMouse(10, 20, MouseButton{Down: true, Clicked: true, ClickX: 5, ClickY: 6})
	want := [4]float32{10, 20, -5, 6}
	if got != want {
		t.Errorf("down+clicked: got %v want %v", got, want)
	}

	got = EncodeMouse(10, 20, MouseButton{Down: false, Clicked: false, ClickX: 5, ClickY: 6})
	want = [4]float32{10, 20, 5, -6}
	if got != want {
		t.Errorf("released: got %v want %v", got, want)
	}
}

func TestEncodeDate(t *testing.T) {
	got := EncodeDate(DateComponents{Year: 2026, Month: 7, Day: 31, Hour: 1, Minute: 2, Second: 3})
	want := [4]float32{2026, 6, 31, 1*3600 + 2*60 + 3}
	if got != want {
		t.Errorf("got %v want %v", got, want)
	}
}
