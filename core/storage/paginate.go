package storage

import (
	"context"
	"fmt"
)

// ListAll enumerates every key under prefix by following continuation tokens.
//
// Keys are returned in the order the backend produced them. The listing stops
// when a page is not truncated or when a truncated page carries no token; the
// latter is treated as a normal end of listing rather than looping forever.
// If any page request fails no keys are returned.
func ListAll(ctx context.Context, lister KeyLister, bucket, prefix string) ([]string, error) {
	keys := []string{}
	token := ""

	for {
		page, err := lister.ListKeys(ctx, bucket, prefix, token)
		if err != nil {
			return nil, fmt.Errorf("failed to list keys under %q: %w", prefix, err)
		}

		keys = append(keys, page.Keys...)

		if !page.IsTruncated || page.NextContinuationToken == "" {
			return keys, nil
		}
		token = page.NextContinuationToken
	}
}
