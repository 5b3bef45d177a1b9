package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Kafka topics for post-commit domain events
const (
	TopicMemberEnrolled  = "member.enrolled"
	TopicPracticeRetired = "practice.retired"
)

// EnrollmentEvent is published after an admission commits
type EnrollmentEvent struct {
	EventID    string    `json:"event_id"`
	MemberID   int64     `json:"member_id"`
	PracticeID int64     `json:"practice_id"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// RetirementEvent is published after a practice retirement commits
type RetirementEvent struct {
	EventID         string    `json:"event_id"`
	PracticeID      int64     `json:"practice_id"`
	PracticeName    string    `json:"practice_name"`
	AffectedMembers []int64   `json:"affected_members"`
	Timestamp       time.Time `json:"timestamp"`
}

// Publisher emits domain events to Kafka after transactions commit.
// With no brokers configured it stays disabled and every publish is a
// logged no-op, mirroring the notifier's disabled mode.
type Publisher struct {
	producer sarama.SyncProducer
	enabled  bool
}

// NewPublisher creates a Kafka-backed publisher, or a disabled one when
// the broker list is empty
func NewPublisher(brokers []string) (*Publisher, error) {
	if len(brokers) == 0 {
		log.Println("Event publisher disabled: KAFKA_BROKERS not configured")
		return &Publisher{enabled: false}, nil
	}

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Printf("Event publisher enabled: brokers=%v", brokers)
	return &Publisher{producer: producer, enabled: true}, nil
}

// PublishMemberEnrolled emits a member.enrolled event
func (p *Publisher) PublishMemberEnrolled(memberID, practiceID int64, status string) error {
	event := EnrollmentEvent{
		EventID:    uuid.NewString(),
		MemberID:   memberID,
		PracticeID: practiceID,
		Status:     status,
		Timestamp:  time.Now(),
	}
	return p.publish(TopicMemberEnrolled, fmt.Sprintf("%d", practiceID), event)
}

// PublishPracticeRetired emits a practice.retired event
func (p *Publisher) PublishPracticeRetired(practiceID int64, practiceName string, affectedMembers []int64) error {
	event := RetirementEvent{
		EventID:         uuid.NewString(),
		PracticeID:      practiceID,
		PracticeName:    practiceName,
		AffectedMembers: affectedMembers,
		Timestamp:       time.Now(),
	}
	return p.publish(TopicPracticeRetired, fmt.Sprintf("%d", practiceID), event)
}

func (p *Publisher) publish(topic, key string, event interface{}) error {
	if !p.enabled {
		log.Printf("Skipping event publish (publisher disabled): topic=%s", topic)
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(value),
		Timestamp: time.Now(),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", topic, err)
	}

	log.Printf("Published event: topic=%s partition=%d offset=%d", topic, partition, offset)
	return nil
}

// Close closes the underlying producer
func (p *Publisher) Close() error {
	if !p.enabled {
		return nil
	}
	return p.producer.Close()
}
