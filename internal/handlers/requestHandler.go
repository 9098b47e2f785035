package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/avasani/KnowledgeAPI/internal/adapter"
	"github.com/avasani/KnowledgeAPI/internal/adapter/utils"
	"github.com/avasani/KnowledgeAPI/internal/api"
	"github.com/avasani/KnowledgeAPI/internal/config"
	"github.com/avasani/KnowledgeAPI/internal/data/filestore"
	"github.com/avasani/KnowledgeAPI/internal/domain/jobModel"
	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
	"github.com/avasani/KnowledgeAPI/internal/kb"
	"github.com/avasani/KnowledgeAPI/pkg/logger_i"
)

var (
	logRH    *logger_i.Logger
	kbRef    *kb.KnowledgeBase
	filesRef *filestore.Storage
)

// newJobData carries everything the job handler needs to queue an
// ingestion without reaching back into the request.
type newJobData struct {
	id         string
	documentId string
	ownerId    string
	traceId    string
	payload    jobModel.JobPayload
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// UploadDocumentHandler godoc
// @Summary      Upload a document for indexing
// @Description  Receives a file via multipart/form-data, stores it, and queues an ingestion job. Returns the document id and a status URL to poll.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        document     formData  file    true   "The document to upload (pdf, txt, md, docx, odt, rtf)"
// @Param        title        formData  string  false  "Display title, defaults to the file name"
// @Param        description  formData  string  false  "Free-form description"
// @Param        category     formData  string  false  "Category used for filtering"
// @Success      202  {object}  api.InitJobResponse  "Ingestion queued"
// @Failure      400  {object}  api.JobResponse      "Missing file or bad form data"
// @Failure      415  {object}  api.JobResponse      "File type not supported"
// @Failure      500  {object}  api.JobResponse      "Storage error"
// @Router       /documents [post]
func UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSizeBytes); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	mediaType := kbmodel.MediaTypeFromExtension(fileMetadata.Filename)
	if !mediaType.IsSupported() {
		logRH.Warn("Rejected upload with unsupported extension", "file", fileMetadata.Filename)
		WriteErrorResponse(w, http.StatusUnsupportedMediaType, "", "File type not supported")
		return
	}

	storedPath, storedSize, err := filesRef.Save(fileMetadata.Filename, fileReader)
	if err != nil {
		logRH.Error("Couldn't store upload :", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
		return
	}

	payload := jobModel.JobPayload{
		FileName:      fileMetadata.Filename,
		FilePath:      storedPath,
		FileSizeBytes: storedSize,
		MediaType:     string(mediaType),
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		Category:      r.FormValue("category"),
	}

	owner := ownerFromContext(r.Context())
	placeholder := kbRef.Register(kb.IngestRequest{
		OwnerID:       owner,
		FilePath:      payload.FilePath,
		FileName:      payload.FileName,
		FileSizeBytes: payload.FileSizeBytes,
		MediaType:     mediaType,
		Title:         payload.Title,
		Description:   payload.Description,
		Category:      payload.Category,
	})

	newJob := newJobData{
		id:         utils.GetNewUUID(),
		documentId: placeholder.ID,
		ownerId:    owner,
		traceId:    r.Context().Value(config.TRACE_ID_KEY).(string),
		payload:    payload,
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id, placeholder.ID))
}

// SearchHandler godoc
// @Summary      Search the knowledge base
// @Description  Runs a ranked term search over the caller's processed documents and returns matches with their most relevant excerpts.
// @Tags         Search
// @Produce      json
// @Param        query     query     string  true   "Search query"
// @Param        limit     query     int     false  "Maximum number of results"
// @Param        category  query     string  false  "Restrict results to a category"
// @Success      200  {object}  api.SearchResponse
// @Failure      400  {object}  api.JobResponse  "Empty query"
// @Router       /search [get]
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	query := r.URL.Query().Get("query")
	opts := kbmodel.SearchOptions{
		Limit:    queryInt(r, "limit", 0),
		Category: r.URL.Query().Get("category"),
	}

	results, err := kbRef.Search(query, ownerFromContext(r.Context()), opts)
	if err != nil {
		if errors.Is(err, kbmodel.ErrInvalidQuery) {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Search query is required")
			return
		}
		logRH.Error("Search failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Search error")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToSearchResponse(query, results))
}

// ListDocumentsHandler godoc
// @Summary      List documents
// @Description  Returns metadata summaries for the caller's processed documents, sorted and paginated.
// @Tags         Documents
// @Produce      json
// @Param        page        query     int     false  "1-indexed page"
// @Param        limit       query     int     false  "Page size"
// @Param        category    query     string  false  "Restrict to a category"
// @Param        sort_by     query     string  false  "title, file_name, file_size, word_count, category, created_at or updated_at"
// @Param        sort_order  query     string  false  "asc or desc"
// @Success      200  {object}  api.DocumentListResponse
// @Router       /documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	owner := ownerFromContext(r.Context())
	opts := kbmodel.ListOptions{
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", config.DefaultPageSize),
		Category:  r.URL.Query().Get("category"),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: kbmodel.SortOrder(r.URL.Query().Get("sort_order")),
	}

	summaries := kbRef.List(owner, opts)
	total := kbRef.Count(owner, opts.Category)
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentListResponse(summaries, opts.Page, opts.Limit, total))
}

// GetDocumentHandler godoc
// @Summary      Get a document
// @Description  Returns the full document record including extracted text and chunks.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentResponse
// @Failure      404  {object}  api.JobResponse  "Document not found"
// @Router       /documents/{id} [get]
func GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	id := utils.GetChiURLParam(r, "id")
	doc, err := kbRef.Get(ownerFromContext(r.Context()), id)
	if err != nil {
		WriteErrorResponse(w, http.StatusNotFound, id, "Document not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(doc))
}

// UpdateDocumentHandler godoc
// @Summary      Update document metadata
// @Description  Patches title, description and category. Absent fields are left untouched.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Document ID"
// @Param        request  body      api.UpdateDocumentRequest  true  "Fields to update"
// @Success      200  {object}  api.DocumentResponse
// @Failure      400  {object}  api.JobResponse  "Malformed body"
// @Failure      404  {object}  api.JobResponse  "Document not found"
// @Router       /documents/{id} [patch]
func UpdateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	id := utils.GetChiURLParam(r, "id")

	var requestData api.UpdateDocumentRequest
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logRH.Error("Couldn't close the update handler reader :", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad update request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, id, "Bad Request")
		return
	}

	patch := kbmodel.MetadataPatch{
		Title:       requestData.Title,
		Description: requestData.Description,
		Category:    requestData.Category,
	}
	doc, err := kbRef.UpdateMetadata(ownerFromContext(r.Context()), id, patch)
	if err != nil {
		WriteErrorResponse(w, http.StatusNotFound, id, "Document not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(doc))
}

// DeleteDocumentHandler godoc
// @Summary      Delete a document
// @Description  Removes the document record, every index entry that references it, and the stored file.
// @Tags         Documents
// @Param        id   path  string  true  "Document ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  api.JobResponse  "Document not found"
// @Router       /documents/{id} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	id := utils.GetChiURLParam(r, "id")
	if err := kbRef.Delete(ownerFromContext(r.Context()), id); err != nil {
		WriteErrorResponse(w, http.StatusNotFound, id, "Document not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStatusHandler godoc
// @Summary      Get ingestion job status
// @Description  Retrieves the current status of an ingestion job using its ID.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		//use chi get the url id
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}
