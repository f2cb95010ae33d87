package mockserver

import (
	"sort"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
	"golang.org/x/crypto/bcrypt"

	orbit "github.com/autonyze/orbit-go"
)

// Store holds the mock backend state in memory. All mutations are
// last-write-wins under a single lock.
type Store struct {
	mu            sync.RWMutex
	users         map[string]*userRecord
	assistants    []orbit.Assistant
	calls         []orbit.Call
	phoneNumbers  []orbit.PhoneNumber
	leads         []orbit.Lead
	campaigns     []orbit.Campaign
	templates     []orbit.Template
	conversations []orbit.Conversation
	messages      map[string][]orbit.Message
	files         []orbit.File
}

type userRecord struct {
	user         orbit.User
	passwordHash []byte
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*userRecord),
		messages: make(map[string][]orbit.Message),
	}
}

// NewSeededStore returns a store pre-populated with the demo tenant used
// by the CLI mock command and the integration tests.
func NewSeededStore() *Store {
	s := NewStore()
	s.seed()
	return s
}

func (s *Store) AddUser(username, password string, user orbit.User) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = &userRecord{user: user, passwordHash: hash}
	return nil
}

// Authenticate checks the password and returns the matching user.
func (s *Store) Authenticate(username, password string) (orbit.User, bool) {
	s.mu.RLock()
	record, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		return orbit.User{}, false
	}
	if bcrypt.CompareHashAndPassword(record.passwordHash, []byte(password)) != nil {
		return orbit.User{}, false
	}
	return record.user, true
}

func (s *Store) ListAssistants() []orbit.Assistant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]orbit.Assistant(nil), s.assistants...)
}

func (s *Store) CreateAssistant(params orbit.AssistantParams) orbit.Assistant {
	s.mu.Lock()
	defer s.mu.Unlock()
	assistant := orbit.Assistant{
		ID:            ksuid.New().String(),
		Name:          params.Name,
		Description:   params.Description,
		Voice:         params.Voice,
		Language:      params.Language,
		Instructions:  params.Instructions,
		IsActive:      params.IsActive,
		PhoneNumberID: params.PhoneNumberID,
		CreatedAt:     time.Now().UTC(),
	}
	s.assistants = append(s.assistants, assistant)
	return assistant
}

func (s *Store) UpdateAssistant(id string, params orbit.AssistantParams) (orbit.Assistant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.assistants {
		if s.assistants[i].ID == id {
			s.assistants[i].Name = params.Name
			s.assistants[i].Description = params.Description
			s.assistants[i].Voice = params.Voice
			s.assistants[i].Language = params.Language
			s.assistants[i].Instructions = params.Instructions
			s.assistants[i].IsActive = params.IsActive
			s.assistants[i].PhoneNumberID = params.PhoneNumberID
			return s.assistants[i], true
		}
	}
	return orbit.Assistant{}, false
}

func (s *Store) DeleteAssistant(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.assistants {
		if s.assistants[i].ID == id {
			s.assistants = append(s.assistants[:i], s.assistants[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) ListCalls() []orbit.Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]orbit.Call(nil), s.calls...)
}

func (s *Store) ListAssistantCalls(assistantID string) []orbit.Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var calls []orbit.Call
	for _, call := range s.calls {
		if call.AssistantID == assistantID {
			calls = append(calls, call)
		}
	}
	return calls
}

// CallStatusCounts aggregates calls by status.
func (s *Store) CallStatusCounts() (map[string]int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int)
	for _, call := range s.calls {
		counts[call.Status]++
	}
	return counts, len(s.calls)
}

// RecentCalls returns up to limit calls, newest first.
func (s *Store) RecentCalls(limit int) []orbit.Call {
	s.mu.RLock()
	calls := append([]orbit.Call(nil), s.calls...)
	s.mu.RUnlock()
	sort.Slice(calls, func(i, j int) bool {
		return calls[i].CreatedAt.After(calls[j].CreatedAt)
	})
	if len(calls) > limit {
		calls = calls[:limit]
	}
	return calls
}

func (s *Store) ListPhoneNumbers() []orbit.PhoneNumber {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]orbit.PhoneNumber(nil), s.phoneNumbers...)
}

func (s *Store) ListLeads() []orbit.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]orbit.Lead(nil), s.leads...)
}

func (s *Store) CreateLead(params orbit.LeadParams) orbit.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead := orbit.Lead{
		ID:           ksuid.New().String(),
		Name:         params.Name,
		Email:        params.Email,
		Phone:        params.Phone,
		Company:      params.Company,
		Title:        params.Title,
		Status:       params.Status,
		Source:       params.Source,
		Tags:         params.Tags,
		IsOptedOut:   params.IsOptedOut,
		CustomFields: params.CustomFields,
		CreatedAt:    time.Now().UTC(),
	}
	if lead.Status == "" {
		lead.Status = "new"
	}
	s.leads = append(s.leads, lead)
	return lead
}

func (s *Store) UpdateLead(id string, params orbit.LeadParams) (orbit.Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID == id {
			s.leads[i].Name = params.Name
			s.leads[i].Email = params.Email
			s.leads[i].Phone = params.Phone
			s.leads[i].Company = params.Company
			s.leads[i].Title = params.Title
			if params.Status != "" {
				s.leads[i].Status = params.Status
			}
			s.leads[i].Source = params.Source
			s.leads[i].Tags = params.Tags
			s.leads[i].IsOptedOut = params.IsOptedOut
			s.leads[i].CustomFields = params.CustomFields
			return s.leads[i], true
		}
	}
	return orbit.Lead{}, false
}

func (s *Store) DeleteLead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) ListCampaigns() []orbit.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]orbit.Campaign(nil), s.campaigns...)
}

func (s *Store) ListTemplates() []orbit.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]orbit.Template(nil), s.templates...)
}

func (s *Store) ListConversations() []orbit.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]orbit.Conversation(nil), s.conversations...)
}

func (s *Store) ListConversationMessages(conversationID string) ([]orbit.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, conversation := range s.conversations {
		if conversation.ID == conversationID {
			return append([]orbit.Message(nil), s.messages[conversationID]...), true
		}
	}
	return nil, false
}

func (s *Store) ListFiles() []orbit.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]orbit.File(nil), s.files...)
}

func (s *Store) AddFile(name string, size int64, contentType string, metadata map[string]any) orbit.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	file := orbit.File{
		ID:          ksuid.New().String(),
		Name:        name,
		Size:        size,
		ContentType: contentType,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}
	s.files = append(s.files, file)
	return file
}

func (s *Store) DeleteFile(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.files {
		if s.files[i].ID == id {
			s.files = append(s.files[:i], s.files[i+1:]...)
			return true
		}
	}
	return false
}
