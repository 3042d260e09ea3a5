package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jbeshir/job-recommender/cmd/mcp/client"
	"github.com/mark3labs/mcp-go/mcp"
)

const defaultLimit = 10

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_recommendations",
		mcp.WithDescription(
			"Get recommended jobs for a user. Jobs come from the user's application window, "+
				"exclude jobs already applied to, and are ranked by similarity. When no job lies "+
				"within max_distance the list falls back to pure similarity ranking."),
		mcp.WithNumber("user_id",
			mcp.Required(),
			mcp.Description("The user's token"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of jobs to return (default: 10, max: 200)"),
		),
		mcp.WithNumber("max_distance",
			mcp.Description("Maximum distance in miles between user and job (default: server setting)"),
		),
	), s.handleGetRecommendations)

	s.mcpServer.AddTool(mcp.NewTool("get_similar_jobs",
		mcp.WithDescription("Find jobs in the same window that are similar to a given job."),
		mcp.WithNumber("job_id",
			mcp.Required(),
			mcp.Description("The job's token"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of jobs to return (default: 10, max: 200)"),
		),
	), s.handleGetSimilarJobs)

	s.mcpServer.AddTool(mcp.NewTool("get_job_probabilities",
		mcp.WithDescription(
			"Score a user's candidate jobs with the trained model and return the probability "+
				"that the user applies to each. Requires an operator token."),
		mcp.WithNumber("user_id",
			mcp.Required(),
			mcp.Description("The user's token"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of jobs to return (default: 10, max: 200)"),
		),
	), s.handleGetJobProbabilities)
}

func (s *Server) handleGetRecommendations(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	userID, ok := intArg(args, "user_id")
	if !ok {
		return mcp.NewToolResultError("user_id is required"), nil
	}

	limit := defaultLimit
	if l, ok := intArg(args, "limit"); ok && l > 0 {
		limit = l
	}

	var maxDistance float64
	if d, ok := args["max_distance"].(float64); ok && d > 0 {
		maxDistance = d
	}

	resp, err := s.client.GetRecommendations(ctx, userID, limit, maxDistance)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get recommendations: %v", err)), nil
	}

	result, err := formatJobsResult(resp.Data)
	if err != nil || !resp.Metadata.Fallback || len(resp.Data) == 0 {
		return result, err
	}

	text := result.Content[0].(mcp.TextContent).Text
	return mcp.NewToolResultText(
		"No jobs were within range, so these are ranked by similarity only.\n\n" + text), nil
}

func (s *Server) handleGetSimilarJobs(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	jobID, ok := intArg(args, "job_id")
	if !ok {
		return mcp.NewToolResultError("job_id is required"), nil
	}

	limit := defaultLimit
	if l, ok := intArg(args, "limit"); ok && l > 0 {
		limit = l
	}

	jobs, err := s.client.GetSimilarJobs(ctx, jobID, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get similar jobs: %v", err)), nil
	}

	return formatJobsResult(jobs)
}

func (s *Server) handleGetJobProbabilities(
	ctx context.Context,
	request mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	userID, ok := intArg(args, "user_id")
	if !ok {
		return mcp.NewToolResultError("user_id is required"), nil
	}

	limit := defaultLimit
	if l, ok := intArg(args, "limit"); ok && l > 0 {
		limit = l
	}

	jobs, err := s.client.GetJobProbabilities(ctx, userID, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get job probabilities: %v", err)), nil
	}

	return formatJobsResult(jobs)
}

// intArg reads a whole-number argument. JSON numbers arrive as float64.
func intArg(args map[string]interface{}, name string) (int, bool) {
	v, ok := args[name].(float64)
	if !ok || v != float64(int(v)) {
		return 0, false
	}
	return int(v), true
}

func formatJobsResult(jobs []client.Job) (*mcp.CallToolResult, error) {
	if len(jobs) == 0 {
		return mcp.NewToolResultText("No jobs found."), nil
	}

	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to format jobs: %v", err)), nil
	}

	msg := fmt.Sprintf("Found %d job(s):\n\n%s", len(jobs), string(data))
	return mcp.NewToolResultText(msg), nil
}
