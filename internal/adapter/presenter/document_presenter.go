package presenter

import (
	"github.com/a-shrinked-org/plato-unchained/internal/adapter/dto/summarize"
	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

// ToDocumentResponse converts a document entity to its API shape.
func ToDocumentResponse(doc *entities.Document) *summarize.DocumentResponse {
	resp := &summarize.DocumentResponse{
		ID:        doc.ID.String(),
		RunID:     doc.RunID.String(),
		Source:    doc.Source,
		ModelUsed: doc.ModelUsed,
		Title:     doc.Title,
		Summary:   doc.Summary,
		Degraded:  doc.Degraded(),
		CreatedAt: doc.CreatedAt,
	}

	for _, ch := range doc.Chapters {
		resp.Chapters = append(resp.Chapters, summarize.ChapterResponse{
			StartMS: ch.StartMS,
			Title:   ch.Title,
			Summary: ch.Summary,
		})
	}
	for _, p := range doc.Passages {
		resp.Passages = append(resp.Passages, summarize.PassageResponse{
			Text:    p.Text,
			StartMS: p.StartMS,
			EndMS:   p.EndMS,
		})
	}
	for _, w := range doc.Warnings {
		resp.Warnings = append(resp.Warnings, summarize.WarningResponse{
			Kind:       string(w.Kind),
			Message:    w.Message,
			Line:       w.Line,
			ChunkIndex: w.ChunkIndex,
		})
	}

	return resp
}

// ToRunResponse converts a pipeline run entity to its API shape.
func ToRunResponse(run *entities.PipelineRun) *summarize.RunResponse {
	return &summarize.RunResponse{
		ID:           run.ID.String(),
		Source:       run.Source,
		Format:       run.Format,
		ModelID:      run.ModelID,
		Status:       string(run.Status),
		EventCount:   run.EventCount,
		ChunkCount:   run.ChunkCount,
		FailedChunks: run.FailedChunks,
		InputTokens:  run.InputTokens,
		ErrorMessage: run.ErrorMessage,
		CreatedAt:    run.CreatedAt,
		UpdatedAt:    run.UpdatedAt,
	}
}
