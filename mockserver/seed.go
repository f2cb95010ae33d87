package mockserver

import (
	"time"

	"github.com/segmentio/ksuid"

	orbit "github.com/autonyze/orbit-go"
)

// Demo credentials accepted by a seeded store.
const (
	DemoUsername = "demo"
	DemoPassword = "orbit-demo"
)

func (s *Store) seed() {
	now := time.Now().UTC()
	created := now.Add(-45 * 24 * time.Hour)

	s.AddUser(DemoUsername, DemoPassword, orbit.User{
		ID:                  ksuid.New().String(),
		Email:               "demo@autonyze.com",
		Name:                "Dr. Sarah Johnson",
		Role:                "admin",
		Company:             "Modern Dental Care",
		Vertical:            "dentist",
		OnboardingCompleted: true,
		TrialDaysLeft:       14,
		Plan:                "professional",
		CreatedAt:           created,
	})

	scheduler := orbit.Assistant{
		ID:           ksuid.New().String(),
		Name:         "Appointment Scheduler",
		Description:  "Books, confirms and reschedules patient appointments",
		Voice:        "nova",
		Language:     "en-US",
		Instructions: "Greet the caller, confirm their identity and offer the next free appointment slots.",
		IsActive:     true,
		CreatedAt:    created,
	}
	reminder := orbit.Assistant{
		ID:           ksuid.New().String(),
		Name:         "Recall Reminder",
		Description:  "Calls patients who are due for a checkup",
		Voice:        "alloy",
		Language:     "en-US",
		Instructions: "Remind the patient about their overdue checkup and offer to book one.",
		IsActive:     false,
		CreatedAt:    created.Add(24 * time.Hour),
	}

	mainLine := orbit.PhoneNumber{
		ID:           ksuid.New().String(),
		Number:       "+14155550101",
		Type:         "local",
		AreaCode:     "415",
		Country:      "US",
		Status:       "active",
		TotalCalls:   152,
		MonthlyCost:  4.99,
		Capabilities: []string{"voice", "sms"},
		CreatedAt:    created,
	}
	scheduler.PhoneNumberID = mainLine.ID
	mainLine.AssignedAssistant = scheduler.ID

	lead := orbit.Lead{
		ID:        ksuid.New().String(),
		Name:      "James Miller",
		Email:     "james.miller@example.com",
		Phone:     "+14155550123",
		Status:    "contacted",
		Source:    "website",
		Tags:      []string{"checkup"},
		Score:     72,
		CreatedAt: created.Add(48 * time.Hour),
	}

	template := orbit.Template{
		ID:           ksuid.New().String(),
		Name:         "Checkup Reminder Call",
		Type:         "call",
		Vertical:     "dentist",
		Content:      "Hi {{name}}, this is {{company}} calling to remind you that you are due for a checkup.",
		Placeholders: []string{"name", "company"},
		IsActive:     true,
		UsageCount:   37,
		CreatedAt:    created,
	}

	campaign := orbit.Campaign{
		ID:          ksuid.New().String(),
		Name:        "Spring Recall",
		Description: "Recall campaign for patients overdue since last spring",
		Channel:     "calls",
		Status:      "running",
		TemplateID:  template.ID,
		AssistantID: reminder.ID,
		Targets:     120,
		Sent:        64,
		Delivered:   58,
		Failed:      6,
		HourlyLimit: 20,
		Schedule: orbit.CampaignSchedule{
			StartDate:   now.Add(-7 * 24 * time.Hour),
			TimeWindows: []orbit.TimeWindow{{Start: "09:00", End: "17:00"}},
			Timezone:    "America/Los_Angeles",
		},
		CreatedAt: created.Add(72 * time.Hour),
	}

	calls := []orbit.Call{
		{
			ID:            ksuid.New().String(),
			CampaignID:    campaign.ID,
			LeadID:        lead.ID,
			AssistantID:   scheduler.ID,
			PhoneNumberID: mainLine.ID,
			Destination:   lead.Phone,
			Status:        "completed",
			Duration:      184,
			Cost:          0.12,
			Summary:       "Booked a cleaning for next Tuesday.",
			Sentiment:     "positive",
			CreatedAt:     now.Add(-2 * time.Hour),
		},
		{
			ID:            ksuid.New().String(),
			CampaignID:    campaign.ID,
			LeadID:        lead.ID,
			AssistantID:   reminder.ID,
			PhoneNumberID: mainLine.ID,
			Destination:   lead.Phone,
			Status:        "no-answer",
			Duration:      0,
			Cost:          0.01,
			CreatedAt:     now.Add(-26 * time.Hour),
		},
		{
			ID:            ksuid.New().String(),
			LeadID:        lead.ID,
			AssistantID:   scheduler.ID,
			PhoneNumberID: mainLine.ID,
			Destination:   lead.Phone,
			Status:        "failed",
			Duration:      3,
			Cost:          0.01,
			CreatedAt:     now.Add(-50 * time.Hour),
		},
	}

	conversation := orbit.Conversation{
		ID:            ksuid.New().String(),
		LeadID:        lead.ID,
		AssistantID:   scheduler.ID,
		Subject:       "Appointment confirmation",
		Status:        "open",
		Priority:      "medium",
		LastMessageAt: now.Add(-30 * time.Minute),
		MessageCount:  2,
		Type:          "support",
		CreatedAt:     now.Add(-3 * time.Hour),
	}

	messages := []orbit.Message{
		{
			ID:          ksuid.New().String(),
			LeadID:      lead.ID,
			Type:        "sms",
			Direction:   "outbound",
			Content:     "Your cleaning is booked for Tuesday at 10:00. Reply YES to confirm.",
			Status:      "delivered",
			FromAddress: mainLine.Number,
			ToAddress:   lead.Phone,
			CreatedAt:   now.Add(-3 * time.Hour),
		},
		{
			ID:          ksuid.New().String(),
			LeadID:      lead.ID,
			Type:        "sms",
			Direction:   "inbound",
			Content:     "YES",
			Status:      "delivered",
			FromAddress: lead.Phone,
			ToAddress:   mainLine.Number,
			CreatedAt:   now.Add(-30 * time.Minute),
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.assistants = []orbit.Assistant{scheduler, reminder}
	s.phoneNumbers = []orbit.PhoneNumber{mainLine}
	s.leads = []orbit.Lead{lead}
	s.templates = []orbit.Template{template}
	s.campaigns = []orbit.Campaign{campaign}
	s.calls = calls
	s.conversations = []orbit.Conversation{conversation}
	s.messages[conversation.ID] = messages
}
