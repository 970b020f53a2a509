//
// OpenParl is pleased to support the open source community by making parlrag available.
//
// Copyright (C) 2026 OpenParl.  All rights reserved.
//
// parlrag is licensed under the Apache License Version 2.0.
//
//

package topk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openparl/parlrag/parl"
)

func TestRerankSortsBySimilarityAndTruncates(t *testing.T) {
	r := New()
	in := []parl.SearchResult{
		{Similarity: 0.2, Ref: parl.SourceRef{Type: parl.SourceBill, Bill: &parl.BillRef{BillID: 1}}},
		{Similarity: 0.9, Ref: parl.SourceRef{Type: parl.SourceBill, Bill: &parl.BillRef{BillID: 2}}},
		{Similarity: 0.5, Ref: parl.SourceRef{Type: parl.SourceBill, Bill: &parl.BillRef{BillID: 3}}},
	}
	got, err := r.Rerank(context.Background(), "ignored", in, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 2, got[0].Ref.Bill.BillID)
	require.Equal(t, 3, got[1].Ref.Bill.BillID)
	// Input order untouched.
	require.Equal(t, 1, in[0].Ref.Bill.BillID)
}
