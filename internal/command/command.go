// Package command holds one type per use case. Each is built once at startup from its
// data sources and is safe to execute concurrently unless its doc says otherwise.
package command

import "context"

// Command is the generic interface for all commands.
// Req is the request type and Res is the result type.
type Command[Req, Res any] interface {
	Execute(ctx context.Context, req Req) (Res, error)
}

// Empty is used as the request or result type for commands that carry no data.
type Empty struct{}

var (
	_ Command[RecommendJobsRequest, RecommendJobsResult]                     = (*RecommendJobs)(nil)
	_ Command[ClassifyUserJobsRequest, []JobProbability]                     = (*ClassifyUserJobs)(nil)
	_ Command[ListSimilarJobsRequest, []RecommendedJob]                      = (*ListSimilarJobs)(nil)
	_ Command[GenerateRecommendationsRequest, GenerateRecommendationsResult] = (*GenerateRecommendations)(nil)
	_ Command[BuildTrainingSetRequest, TrainingSet]                          = (*BuildTrainingSet)(nil)
	_ Command[TrainScoringModelRequest, TrainScoringModelResult]             = (*TrainScoringModel)(nil)
	_ Command[BuildCooccurrenceMatricesRequest, CooccurrenceMatrices]        = (*BuildCooccurrenceMatrices)(nil)
	_ Command[Empty, int]                                                    = (*ExportJobVectors)(nil)
)
