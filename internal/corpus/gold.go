package corpus

import (
	"context"
	"fmt"

	"github.com/happyhackingspace/wordalign/ibm1"
)

// LoadGold reads up to limit gold alignment lines (all when limit is 0).
func (s *Storage) LoadGold(ctx context.Context, files Files, limit int) ([]ibm1.Reference, error) {
	path := s.Path(files, files.AlignExt)
	lines, err := readLines(ctx, path, limit)
	if err != nil {
		return nil, err
	}
	refs := make([]ibm1.Reference, len(lines))
	for i, line := range lines {
		ref, err := ibm1.ParseReference(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		refs[i] = ref
	}
	return refs, nil
}
