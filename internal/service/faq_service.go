package service

import (
	"context"
	"fmt"
	"strings"

	"huddleup-faq-be/internal/dto"
	"huddleup-faq-be/internal/entity"
	"huddleup-faq-be/internal/knowledge"
	"huddleup-faq-be/internal/pkg/logger"
	"huddleup-faq-be/internal/repository/specification"
	"huddleup-faq-be/internal/repository/unitofwork"
	"huddleup-faq-be/pkg/assistant"
	"huddleup-faq-be/pkg/assistant/discovery"
	"huddleup-faq-be/pkg/assistant/engagement"
	"huddleup-faq-be/pkg/assistant/resolver"
	"huddleup-faq-be/pkg/events"

	"github.com/google/uuid"
)

const module = "FAQ_SERVICE"

const (
	defaultCategory = "general"
	// searchThreshold is used by the search endpoints, which favour recall.
	searchThreshold = 0.6
	chunkLimit      = 5
)

type IFaqService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	Discover(ctx context.Context, req *dto.DiscoveryRequest) (*dto.DiscoveryResponse, error)
	SemanticSearch(ctx context.Context, req *dto.SemanticSearchRequest) (*dto.SemanticSearchResponse, error)
	CreateFaq(ctx context.Context, req *dto.CreateFaqRequest) (*dto.CreateFaqResponse, error)
	ListFaqs(ctx context.Context, category string) (*dto.ListFaqsResponse, error)
	SearchFaqs(ctx context.Context, query string) (*dto.ListFaqsResponse, error)
	ListDocuments(ctx context.Context) (*dto.ListDocumentsResponse, error)
	SearchKnowledgeBase(ctx context.Context, query string) (*dto.KnowledgeSearchResponse, error)
	History(ctx context.Context, sessionID string) (*dto.ChatHistoryResponse, error)
	Profile(ctx context.Context, sessionID string) (*dto.ProfileDTO, error)
}

type answerResolver interface {
	Resolve(ctx context.Context, question, sessionID string) (*resolver.Result, error)
}

type conversationOrchestrator interface {
	Converse(ctx context.Context, question, sessionID string) (*discovery.Reply, error)
}

type profileAnalyzer interface {
	AnalyzeProfile(ctx context.Context, sessionID string) engagement.Profile
}

type keywordSearcher interface {
	Faqs(ctx context.Context, query string, limit int) ([]*entity.FaqEntry, error)
	Documents(ctx context.Context, query string, limit int) ([]*entity.Document, error)
	Chunks(ctx context.Context, query string, limit int) ([]knowledge.ChunkHit, error)
}

type FaqServiceDeps struct {
	UowFactory     unitofwork.RepositoryFactory
	Resolver       answerResolver
	Orchestrator   conversationOrchestrator
	Tracker        profileAnalyzer
	Vectors        resolver.VectorIndex
	Keywords       keywordSearcher
	History        assistant.HistoryReader
	Queue          knowledge.Enqueuer
	EventPublisher events.Publisher
	Logger         logger.ILogger
	TopK           int
}

type faqService struct {
	uowFactory     unitofwork.RepositoryFactory
	resolver       answerResolver
	orchestrator   conversationOrchestrator
	tracker        profileAnalyzer
	vectors        resolver.VectorIndex
	keywords       keywordSearcher
	history        assistant.HistoryReader
	queue          knowledge.Enqueuer
	eventPublisher events.Publisher
	logger         logger.ILogger
	topK           int
}

func NewFaqService(deps FaqServiceDeps) IFaqService {
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	if deps.TopK <= 0 {
		deps.TopK = resolver.DefaultConfig().TopK
	}
	return &faqService{
		uowFactory:     deps.UowFactory,
		resolver:       deps.Resolver,
		orchestrator:   deps.Orchestrator,
		tracker:        deps.Tracker,
		vectors:        deps.Vectors,
		keywords:       deps.Keywords,
		history:        deps.History,
		queue:          deps.Queue,
		eventPublisher: deps.EventPublisher,
		logger:         deps.Logger,
		topK:           deps.TopK,
	}
}

func sessionOrNew(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

func (s *faqService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	sessionID := sessionOrNew(req.SessionId)

	result, err := s.resolver.Resolve(ctx, req.Question, sessionID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.TypeFaqAsked, map[string]interface{}{
		"session_id":    sessionID,
		"search_method": result.Strategy,
		"success":       result.Success,
	}))

	sources := make([]map[string]interface{}, len(result.Sources))
	for i, tag := range result.Sources {
		sources[i] = tag
	}

	return &dto.AskResponse{
		Answer:       result.Answer,
		Success:      result.Success,
		Sources:      sources,
		SearchMethod: result.Strategy,
		Threshold:    result.Threshold,
		SessionId:    sessionID,
	}, nil
}

func (s *faqService) Discover(ctx context.Context, req *dto.DiscoveryRequest) (*dto.DiscoveryResponse, error) {
	sessionID := sessionOrNew(req.SessionId)

	reply, err := s.orchestrator.Converse(ctx, req.Question, sessionID)
	if err != nil {
		return nil, err
	}

	actions := toActionDTOs(reply.Actions)
	types := make([]string, len(actions))
	for i, a := range actions {
		types[i] = a.Type
	}
	s.publish(ctx, events.New(events.TypeDiscoveryConversed, map[string]interface{}{
		"session_id": sessionID,
		"stage":      string(reply.Stage),
		"readiness":  reply.Profile.Readiness,
		"actions":    types,
		"success":    reply.Success,
	}))

	return &dto.DiscoveryResponse{
		Response:   reply.Text,
		Actions:    actions,
		Success:    reply.Success,
		Stage:      string(reply.Stage),
		QueryCount: reply.QueryCount,
		Profile:    toProfileDTO(reply.Profile),
		SessionId:  sessionID,
	}, nil
}

func (s *faqService) SemanticSearch(ctx context.Context, req *dto.SemanticSearchRequest) (*dto.SemanticSearchResponse, error) {
	threshold := req.Threshold
	if threshold <= 0 {
		threshold = searchThreshold
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.topK
	}

	results, err := s.semantic(ctx, req.Question, threshold, limit)
	if err != nil {
		return nil, err
	}
	return &dto.SemanticSearchResponse{Query: req.Question, Results: results}, nil
}

func (s *faqService) semantic(ctx context.Context, query string, threshold float64, limit int) ([]dto.SemanticMatchDTO, error) {
	if s.vectors == nil {
		return nil, knowledge.ErrNoEmbedder
	}
	matches, err := s.vectors.Search(ctx, query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}

	results := make([]dto.SemanticMatchDTO, len(matches))
	for i, m := range matches {
		content, _ := resolver.UsableContent(m, 0)
		results[i] = dto.SemanticMatchDTO{
			Id:         m.ID,
			Source:     string(m.Kind),
			Title:      m.Title,
			Content:    content,
			Similarity: m.Score,
			Metadata:   m.Metadata,
		}
	}
	return results, nil
}

func (s *faqService) CreateFaq(ctx context.Context, req *dto.CreateFaqRequest) (*dto.CreateFaqResponse, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = defaultCategory
	}
	keywords := req.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	faq := &entity.FaqEntry{
		Question: strings.TrimSpace(req.Question),
		Answer:   strings.TrimSpace(req.Answer),
		Category: category,
		Keywords: keywords,
	}
	if err := s.uowFactory.NewUnitOfWork(ctx).FaqRepository().Create(ctx, faq); err != nil {
		return nil, fmt.Errorf("create faq: %w", err)
	}

	s.enqueue(ctx, dto.EmbedJobMessage{Kind: dto.EmbedKindFaq, Id: faq.Id})
	s.publish(ctx, events.New(events.TypeFaqCreated, map[string]interface{}{
		"faq_id":   faq.Id.String(),
		"category": faq.Category,
	}))

	return &dto.CreateFaqResponse{Id: faq.Id}, nil
}

func (s *faqService) ListFaqs(ctx context.Context, category string) (*dto.ListFaqsResponse, error) {
	faqs, err := s.uowFactory.NewUnitOfWork(ctx).FaqRepository().FindAll(ctx,
		specification.ByCategory{Category: strings.TrimSpace(category)},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	return toListFaqs(faqs), nil
}

func (s *faqService) SearchFaqs(ctx context.Context, query string) (*dto.ListFaqsResponse, error) {
	faqs, err := s.keywords.Faqs(ctx, query, 0)
	if err != nil {
		return nil, err
	}
	return toListFaqs(faqs), nil
}

func (s *faqService) ListDocuments(ctx context.Context) (*dto.ListDocumentsResponse, error) {
	docs, err := s.uowFactory.NewUnitOfWork(ctx).DocumentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	res := &dto.ListDocumentsResponse{Documents: make([]*dto.DocumentResponse, len(docs)), Count: len(docs)}
	for i, d := range docs {
		res.Documents[i] = toDocumentResponse(d)
	}
	return res, nil
}

// SearchKnowledgeBase tries semantic search first and falls back to keyword
// search over FAQs, documents and chunks.
func (s *faqService) SearchKnowledgeBase(ctx context.Context, query string) (*dto.KnowledgeSearchResponse, error) {
	semantic, err := s.semantic(ctx, query, searchThreshold, s.topK)
	if err != nil {
		s.logger.Warn(module, "Semantic search unavailable, using keyword search", map[string]interface{}{"error": err.Error()})
	}
	if len(semantic) > 0 {
		return &dto.KnowledgeSearchResponse{SearchType: "semantic", Semantic: semantic, TotalCount: len(semantic)}, nil
	}

	faqs, err := s.keywords.Faqs(ctx, query, 0)
	if err != nil {
		return nil, err
	}
	docs, err := s.keywords.Documents(ctx, query, 0)
	if err != nil {
		return nil, err
	}
	chunks, err := s.keywords.Chunks(ctx, query, chunkLimit)
	if err != nil {
		return nil, err
	}

	results := &dto.KeywordSearchResults{
		FaqEntries:     toListFaqs(faqs).Faqs,
		Documents:      make([]*dto.DocumentResponse, len(docs)),
		DocumentChunks: make([]*dto.DocumentChunkDTO, len(chunks)),
	}
	for i, d := range docs {
		results.Documents[i] = toDocumentResponse(d)
	}
	for i, c := range chunks {
		results.DocumentChunks[i] = &dto.DocumentChunkDTO{
			Id:            c.Chunk.Id,
			DocumentId:    c.Chunk.DocumentId,
			DocumentTitle: c.DocumentTitle,
			ChunkText:     c.Chunk.ChunkText,
			ChunkIndex:    c.Chunk.ChunkIndex,
		}
	}

	return &dto.KnowledgeSearchResponse{
		SearchType: "traditional",
		Keyword:    results,
		TotalCount: len(faqs) + len(docs) + len(chunks),
	}, nil
}

func (s *faqService) History(ctx context.Context, sessionID string) (*dto.ChatHistoryResponse, error) {
	turns, err := s.history.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	res := &dto.ChatHistoryResponse{SessionId: sessionID, Turns: make([]dto.ChatTurnDTO, len(turns))}
	for i, t := range turns {
		res.Turns[i] = dto.ChatTurnDTO{Role: string(t.Role), Content: t.Content}
	}
	return res, nil
}

func (s *faqService) Profile(ctx context.Context, sessionID string) (*dto.ProfileDTO, error) {
	p := toProfileDTO(s.tracker.AnalyzeProfile(ctx, sessionID))
	return &p, nil
}

func (s *faqService) enqueue(ctx context.Context, job dto.EmbedJobMessage) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		s.logger.Warn(module, "Could not schedule embedding", map[string]interface{}{
			"error": err.Error(),
			"kind":  job.Kind,
			"id":    job.Id,
		})
	}
}

// publish is best effort; a missing or failing bus never fails the request.
func (s *faqService) publish(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn(module, "Failed to publish event", map[string]interface{}{
			"error": err.Error(),
			"event": evt.EventType(),
		})
	}
}

func toListFaqs(faqs []*entity.FaqEntry) *dto.ListFaqsResponse {
	res := &dto.ListFaqsResponse{Faqs: make([]*dto.FaqEntryResponse, len(faqs)), Count: len(faqs)}
	for i, f := range faqs {
		res.Faqs[i] = &dto.FaqEntryResponse{
			Id:        f.Id,
			Question:  f.Question,
			Answer:    f.Answer,
			Category:  f.Category,
			Keywords:  f.Keywords,
			CreatedAt: f.CreatedAt,
			UpdatedAt: f.UpdatedAt,
		}
	}
	return res
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:           d.Id,
		Title:        d.Title,
		Content:      d.Content,
		Category:     d.Category,
		DocumentType: d.DocumentType,
		CreatedAt:    d.CreatedAt,
	}
}

func toActionDTOs(actions []engagement.Action) []dto.ActionDTO {
	out := make([]dto.ActionDTO, len(actions))
	for i, a := range actions {
		out[i] = dto.ActionDTO{Type: string(a.Type), Label: a.Label, Description: a.Description}
	}
	return out
}

func toProfileDTO(p engagement.Profile) dto.ProfileDTO {
	needs := p.Needs
	if needs == nil {
		needs = []string{}
	}
	return dto.ProfileDTO{
		Profile:           p.Label,
		Needs:             needs,
		Readiness:         p.Readiness,
		ConversationCount: p.ConversationCount,
		EngagementScore:   p.EngagementScore,
	}
}
