package runtime

import "github.com/aretw0/goalstack/pkg/domain"

// goalStack is the LIFO agenda. The last element is the top.
type goalStack []domain.Entry

func (s *goalStack) push(e domain.Entry) {
	*s = append(*s, e)
}

func (s *goalStack) pop() domain.Entry {
	old := *s
	top := old[len(old)-1]
	*s = old[:len(old)-1]
	return top
}

// peek returns the entry depth slots below the top (0 = top).
func (s goalStack) peek(depth int) (domain.Entry, bool) {
	i := len(s) - 1 - depth
	if i < 0 {
		return domain.Entry{}, false
	}
	return s[i], true
}

func (s goalStack) top() domain.Entry {
	e, _ := s.peek(0)
	return e
}

func (s goalStack) empty() bool { return len(s) == 0 }
