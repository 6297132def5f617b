package sntext

import "testing"

func TestTrieBranchAndEntity(t *testing.T) {
	trie := NewTrie(map[string]int64{
		"a":   1,
		"ab":  2,
		"abc": 3,
		"x":   4,
	})
	if got := trie.Entity(); got != NoEntity {
		t.Fatalf("root Entity = %d, want NoEntity", got)
	}
	if !trie.Branch('a') {
		t.Fatalf("Branch a = false")
	}
	if got := trie.Entity(); got != 1 {
		t.Fatalf("Entity after a = %d, want 1", got)
	}
	if trie.Branch('z') {
		t.Fatalf("Branch z = true, want false")
	}
	// A failed branch leaves the position unchanged.
	if got := trie.Entity(); got != 1 {
		t.Fatalf("Entity after failed branch = %d, want 1", got)
	}
	if !trie.Branch('b') || trie.Entity() != 2 {
		t.Fatalf("ab not reachable")
	}
	if !trie.Branch('c') || trie.Entity() != 3 {
		t.Fatalf("abc not reachable")
	}
	trie.Reset()
	if !trie.Branch('x') || trie.Entity() != 4 {
		t.Fatalf("x not reachable after Reset")
	}
}

func TestTrieNonTerminalPrefix(t *testing.T) {
	trie := NewTrie(map[string]int64{"abc": 7})
	if !trie.Branch('a') || !trie.Branch('b') {
		t.Fatalf("prefix branches missing")
	}
	if got := trie.Entity(); got != NoEntity {
		t.Fatalf("Entity mid-key = %d, want NoEntity", got)
	}
}

func TestDefaultMapSelfEntities(t *testing.T) {
	m := DefaultMap()
	for _, c := range []byte{'a', 'Z', '0', ' ', '\t', '\n', '!', '~', '{', '}', '"', '\''} {
		m.Reset()
		if !m.Branch(c) {
			t.Fatalf("Branch %q = false", c)
		}
		if got := m.Entity(); got != int64(c) {
			t.Fatalf("Entity %q = %d, want %d", c, got, c)
		}
	}
	for _, c := range []byte{'\\', '&', 0x00, 0x7f} {
		m.Reset()
		if m.Branch(c) && m.Entity() == int64(c) {
			t.Fatalf("%q must not decode to itself at root", c)
		}
	}
}

func TestDefaultMapEscapes(t *testing.T) {
	m := DefaultMap()
	tests := []struct {
		key  string
		want int64
	}{
		{`\\`, '\\'},
		{`\"`, '"'},
		{`\'`, '\''},
		{`\{`, '{'},
		{`\}`, '}'},
		{`\n`, '\n'},
		{`\&`, '&'},
		{"\\\n", ' '},
		{`\u`, EntityEscapeUnicode},
		{"&amp;", '&'},
		{"&#", EntityEscapeDecimal},
		{"&#x", EntityEscapeHex},
	}
	for _, tc := range tests {
		m.Reset()
		for i := 0; i < len(tc.key); i++ {
			if !m.Branch(tc.key[i]) {
				t.Fatalf("key %q: Branch %q = false", tc.key, tc.key[i])
			}
		}
		if got := m.Entity(); got != tc.want {
			t.Fatalf("key %q: Entity = %#x, want %#x", tc.key, got, tc.want)
		}
	}
}
