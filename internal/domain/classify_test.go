package domain

import "testing"

func kwhSession(kwh float64) Session {
	return Session{SessionID: "s", SessionKWH: kwh}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		kwh       float64
		threshold float64
		want      Class
	}{
		{"zero is empty", 0, 1.0, ClassEmpty},
		{"zero is empty without threshold", 0, 0, ClassEmpty},
		{"below threshold is micro", 0.5, 1.0, ClassMicro},
		{"just under threshold is micro", 0.999, 1.0, ClassMicro},
		{"at threshold is normal", 1.0, 1.0, ClassNormal},
		{"above threshold is normal", 7.2, 1.0, ClassNormal},
		{"positive without threshold is normal", 0.01, 0, ClassNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(kwhSession(tt.kwh), tt.threshold); got != tt.want {
				t.Errorf("Classify(kwh=%v, threshold=%v) = %v, want %v", tt.kwh, tt.threshold, got, tt.want)
			}
		})
	}
}

// Every session lands in exactly one class for a fixed threshold, and the
// per-class counts always sum to the total.
func TestClassifyPartitionsSessions(t *testing.T) {
	kwhs := []float64{0, 0, 0.2, 0.5, 0.999, 1.0, 1.5, 3, 7.2, 0}
	sessions := make([]Session, 0, len(kwhs))
	for _, k := range kwhs {
		sessions = append(sessions, kwhSession(k))
	}

	for _, threshold := range []float64{0, 0.5, 1.0, 10} {
		counts := map[Class]int{}
		for _, s := range sessions {
			counts[Classify(s, threshold)]++
		}
		got := counts[ClassEmpty] + counts[ClassMicro] + counts[ClassNormal]
		if got != len(sessions) {
			t.Errorf("threshold %v: classes cover %d of %d sessions", threshold, got, len(sessions))
		}
		if threshold <= 0 && counts[ClassMicro] != 0 {
			t.Errorf("threshold %v: got %d micro sessions without a threshold", threshold, counts[ClassMicro])
		}
	}
}

func TestClassString(t *testing.T) {
	if ClassEmpty.String() != "empty" || ClassMicro.String() != "micro" || ClassNormal.String() != "normal" {
		t.Errorf("unexpected class names: %v %v %v", ClassEmpty, ClassMicro, ClassNormal)
	}
}
