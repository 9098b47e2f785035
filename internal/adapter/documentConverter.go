package adapter

import (
	"github.com/avasani/KnowledgeAPI/internal/api"
	"github.com/avasani/KnowledgeAPI/internal/config"
	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
)

func ToDocumentResponse(doc kbmodel.Document) api.DocumentResponse {
	chunks := make([]api.ChunkPayload, 0, len(doc.Chunks))
	for _, c := range doc.Chunks {
		chunks = append(chunks, api.ChunkPayload{
			Text:       c.Text,
			StartIndex: c.StartIndex,
			WordCount:  c.WordCount,
		})
	}

	return api.DocumentResponse{
		Id:            doc.ID,
		Title:         doc.Title,
		Description:   doc.Description,
		Category:      doc.Category,
		FileName:      doc.FileName,
		FileSizeBytes: doc.FileSizeBytes,
		MediaType:     string(doc.MediaType),
		ExtractedText: doc.ExtractedText,
		Chunks:        chunks,
		WordCount:     doc.WordCount,
		Status:        string(doc.Status),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func ToSummaryPayload(summary kbmodel.DocumentSummary) api.DocumentSummaryPayload {
	return api.DocumentSummaryPayload{
		Id:            summary.ID,
		Title:         summary.Title,
		Description:   summary.Description,
		Category:      summary.Category,
		FileName:      summary.FileName,
		FileSizeBytes: summary.FileSizeBytes,
		MediaType:     string(summary.MediaType),
		WordCount:     summary.WordCount,
		Status:        string(summary.Status),
		CreatedAt:     summary.CreatedAt,
		UpdatedAt:     summary.UpdatedAt,
	}
}

func ToDocumentListResponse(summaries []kbmodel.DocumentSummary, page, limit, totalItems int) api.DocumentListResponse {
	payloads := make([]api.DocumentSummaryPayload, 0, len(summaries))
	for _, s := range summaries {
		payloads = append(payloads, ToSummaryPayload(s))
	}

	return api.DocumentListResponse{
		Documents:  payloads,
		Pagination: calculatePagination(page, limit, totalItems),
	}
}

func calculatePagination(page, limit, totalItems int) api.Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = config.DefaultPageSize
	}
	totalPages := (totalItems + limit - 1) / limit
	return api.Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

func ToSearchResponse(query string, results []kbmodel.SearchResult) api.SearchResponse {
	payloads := make([]api.SearchResultPayload, 0, len(results))
	for _, r := range results {
		chunks := make([]api.ChunkPayload, 0, len(r.RelevantChunks))
		for _, m := range r.RelevantChunks {
			chunks = append(chunks, api.ChunkPayload{
				Text:        m.Chunk.Text,
				StartIndex:  m.Chunk.StartIndex,
				WordCount:   m.Chunk.WordCount,
				Occurrences: m.Occurrences,
			})
		}
		payloads = append(payloads, api.SearchResultPayload{
			Document:       ToSummaryPayload(r.Document),
			Score:          r.Score,
			RelevantChunks: chunks,
			MatchedTerms:   r.MatchedTerms,
		})
	}

	return api.SearchResponse{
		Query:   query,
		Results: payloads,
		Count:   len(payloads),
	}
}
