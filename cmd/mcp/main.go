// Package main provides the entry point for the job recommender MCP server.
//
// The server lets AI agents fetch job recommendations, similar jobs and scoring
// model probabilities from a running job recommender API.
//
// Configuration:
//
//	JOB_RECOMMENDER_API_URL   - Base URL of the API (default: http://localhost:8080)
//	JOB_RECOMMENDER_API_TOKEN - Operator token, needed for job probabilities (format: jr_xxx)
//
// Usage with an MCP client:
//
//	mcp add job-recommender --transport stdio \
//	  --env JOB_RECOMMENDER_API_TOKEN=jr_xxx \
//	  -- /path/to/job-recommender-mcp
package main

import (
	"log"
	"os"

	"github.com/jbeshir/job-recommender/cmd/mcp/client"
	"github.com/jbeshir/job-recommender/cmd/mcp/server"
)

func main() {
	apiURL := os.Getenv("JOB_RECOMMENDER_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	apiClient := client.NewClient(apiURL, os.Getenv("JOB_RECOMMENDER_API_TOKEN"))
	srv := server.NewServer(apiClient)

	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
