package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/profile-tailor/internal/analysis"
	"github.com/jonathan/profile-tailor/internal/fetch"
	"github.com/jonathan/profile-tailor/internal/jobstore"
	"github.com/jonathan/profile-tailor/internal/llm"
	"github.com/jonathan/profile-tailor/internal/pipeline"
	"github.com/jonathan/profile-tailor/internal/types"
)

// asyncJobTimeout bounds one background customization run
const asyncJobTimeout = 10 * time.Minute

// CustomizeRequest is the request body for both customize endpoints. A job can
// be supplied pre-analyzed (job_description) or as a posting URL (job_url) that
// the server fetches and analyzes before customizing.
type CustomizeRequest struct {
	Profile        *types.Profile        `json:"profile" validate:"required"`
	JobDescription *types.JobDescription `json:"job_description,omitempty"`
	JobURL         string                `json:"job_url,omitempty" validate:"omitempty,url"`
	Instructions   []types.Instruction   `json:"instructions,omitempty" validate:"max=20"`
	TargetRole     string                `json:"target_role,omitempty" validate:"max=200"`
	TargetCompany  string                `json:"target_company,omitempty" validate:"max=200"`
}

// JobResponse reports the state of an asynchronous customization job
type JobResponse struct {
	ID     uuid.UUID                 `json:"id"`
	State  jobstore.JobState         `json:"state"`
	Error  string                    `json:"error,omitempty"`
	Result *pipeline.CustomizeResult `json:"result,omitempty"`
}

func (s *Server) decodeCustomizeRequest(r *http.Request) (*CustomizeRequest, error) {
	var req CustomizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := s.validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	if req.JobDescription == nil && req.JobURL == "" && req.TargetRole == "" {
		return nil, fmt.Errorf("one of job_description, job_url or target_role is required")
	}
	if req.JobDescription != nil && req.JobURL != "" {
		return nil, fmt.Errorf("job_description and job_url are mutually exclusive")
	}
	return &req, nil
}

// resolveJobDescription returns the request's job description, fetching and
// analyzing the posting URL first when one was supplied instead.
func (s *Server) resolveJobDescription(ctx context.Context, req *CustomizeRequest) (*types.JobDescription, error) {
	if req.JobURL == "" {
		return req.JobDescription, nil
	}

	posting, err := fetch.JobPosting(ctx, req.JobURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job posting: %w", err)
	}

	client := s.client
	if client == nil {
		client, err = llm.NewClient(ctx, nil, s.apiKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
	}
	return analysis.AnalyzeJobPosting(ctx, client, posting.Text)
}

// handleCustomize starts an asynchronous customization job and returns its ID
func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeCustomizeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job := jobstore.NewJob()
	if err := s.store.Put(r.Context(), job); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	go s.runJob(job, req)

	writeJSON(w, http.StatusAccepted, JobResponse{ID: job.ID, State: job.State})
}

// runJob executes the pipeline in the background and records the outcome
func (s *Server) runJob(job *jobstore.Job, req *CustomizeRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), asyncJobTimeout)
	defer cancel()

	jd, err := s.resolveJobDescription(ctx, req)
	if err == nil {
		var result *pipeline.CustomizeResult
		result, err = pipeline.Customize(ctx, pipeline.CustomizeOptions{
			Profile:        req.Profile,
			JobDescription: jd,
			TargetRole:     req.TargetRole,
			TargetCompany:  req.TargetCompany,
			Instructions:   req.Instructions,
			APIKey:         s.apiKey,
			Client:         s.client,
		})
		if err == nil {
			if payload, marshalErr := json.Marshal(result); marshalErr != nil {
				err = marshalErr
			} else {
				job.Complete(payload)
			}
		}
	}
	if err != nil {
		job.Fail(err)
	}

	if err := s.store.Put(ctx, job); err != nil {
		log.Printf("Failed to persist job %s: %v", job.ID, err)
	}
}

// handleGetCustomization returns the state and result of a job
func (s *Server) handleGetCustomization(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job ID")
		return
	}

	job, err := s.store.Get(r.Context(), id)
	if errors.Is(err, jobstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}

	resp := JobResponse{ID: job.ID, State: job.State, Error: job.Error}
	if job.State == jobstore.StateComplete {
		result := &pipeline.CustomizeResult{}
		if err := json.Unmarshal(job.Result, result); err == nil {
			resp.Result = result
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCustomizeSync runs the pipeline inline and returns the full result
func (s *Server) handleCustomizeSync(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeCustomizeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	jd, err := s.resolveJobDescription(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	result, err := pipeline.Customize(r.Context(), pipeline.CustomizeOptions{
		Profile:        req.Profile,
		JobDescription: jd,
		TargetRole:     req.TargetRole,
		TargetCompany:  req.TargetCompany,
		Instructions:   req.Instructions,
		APIKey:         s.apiKey,
		Client:         s.client,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
