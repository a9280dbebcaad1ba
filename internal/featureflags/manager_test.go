package featureflags

import "testing"

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	if !m.Enabled("a", 1) || !m.Enabled("c", 1) || !m.Enabled("e", 1) {
		t.Fatal("expected enabled boolean values to evaluate true")
	}
	if m.Enabled("b", 1) || m.Enabled("d", 1) || m.Enabled("f", 1) {
		t.Fatal("expected disabled boolean values to evaluate false")
	}
}

func TestEnabled_BareNames(t *testing.T) {
	m := NewManager("post_list_cache, image_thumbs")

	if !m.Enabled(PostListCache, 0) {
		t.Fatal("bare flag name should be enabled")
	}
	if !m.Enabled(ImageThumbs, 42) {
		t.Fatal("bare flag name should be enabled for any user")
	}
	if m.Enabled("unknown", 1) {
		t.Fatal("unknown flag should be disabled")
	}
}

func TestEnabled_PercentRollout(t *testing.T) {
	m := NewManager("gradual=50%")

	// deterministic per user
	for _, uid := range []uint{1, 2, 3, 4, 5} {
		first := m.Enabled("gradual", uid)
		for i := 0; i < 3; i++ {
			if m.Enabled("gradual", uid) != first {
				t.Fatalf("rollout flipped for user %d", uid)
			}
		}
	}

	if m.Enabled("gradual", 0) {
		t.Fatal("anonymous users never join percent rollouts")
	}

	if !NewManager("all=100%").Enabled("all", 0) {
		t.Fatal("100%% rollout should include everyone")
	}
	if NewManager("none=0%").Enabled("none", 7) {
		t.Fatal("0%% rollout should include nobody")
	}
}

func TestEnabled_NilManager(t *testing.T) {
	var m *Manager
	if m.Enabled("anything", 1) {
		t.Fatal("nil manager must report disabled")
	}
}

func TestSnapshot(t *testing.T) {
	m := NewManager("a=on,b=off")
	snap := m.Snapshot(1)
	if !snap["a"] || snap["b"] {
		t.Fatalf("unexpected snapshot: %v", snap)
	}
}
