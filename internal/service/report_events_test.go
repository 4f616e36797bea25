package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

type wireMessage struct {
	Subject string
	Data    []byte
}

// startWireServer accepts one NATS client and reports every PUB it receives.
func startWireServer(t *testing.T) (string, <-chan wireMessage) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	messages := make(chan wireMessage, 8)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		info := `{"server_id":"report-events-test","version":"2.10.0","proto":1,"max_payload":1048576}`
		if _, err := fmt.Fprintf(conn, "INFO %s\r\n", info); err != nil {
			return
		}

		r := bufio.NewReader(conn)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\r\n")
			switch {
			case strings.HasPrefix(line, "PING"):
				if _, err := io.WriteString(conn, "PONG\r\n"); err != nil {
					return
				}
			case strings.HasPrefix(line, "PUB "):
				fields := strings.Fields(line)
				size, err := strconv.Atoi(fields[len(fields)-1])
				if err != nil {
					return
				}
				body := make([]byte, size+2)
				if _, err := io.ReadFull(r, body); err != nil {
					return
				}
				messages <- wireMessage{Subject: fields[1], Data: body[:size]}
			}
		}
	}()

	return "nats://" + ln.Addr().String(), messages
}

func connectWire(t *testing.T, url string) *nats.Conn {
	t.Helper()
	conn, err := nats.Connect(url, nats.NoReconnect(), nats.Timeout(2*time.Second))
	require.NoError(t, err)
	t.Cleanup(conn.Close)
	return conn
}

func TestNATSReportPublisherSendsEventJSON(t *testing.T) {
	url, messages := startWireServer(t)
	conn := connectWire(t, url)
	publisher := NewNATSReportPublisher(conn, "iqac.reports.generated", testLogger())

	generated := time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)
	event := ReportEvent{
		ID:            "rep-1",
		ActivityType:  "research",
		Format:        "pdf",
		AcademicYear:  "2023-2024",
		DepartmentID:  uintPtr(3),
		Department:    "Computer Science",
		ActorID:       9,
		ActorRole:     "iqac",
		Rows:          5,
		Sections:      1,
		Filename:      "IQAC_research_2023-2024_1705311000.pdf",
		CorrelationID: "corr-events",
		GeneratedAt:   generated,
	}
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.NoError(t, conn.Flush())

	select {
	case msg := <-messages:
		require.Equal(t, "iqac.reports.generated", msg.Subject)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Data, &decoded))
		require.Equal(t, "rep-1", decoded["id"])
		require.Equal(t, "research", decoded["activity_type"])
		require.Equal(t, float64(3), decoded["department_id"])
		require.Equal(t, "corr-events", decoded["correlation_id"])
		require.Equal(t, "2024-01-15T09:30:00Z", decoded["generated_at"])

		var roundTrip ReportEvent
		require.NoError(t, json.Unmarshal(msg.Data, &roundTrip))
		require.Equal(t, event, roundTrip)
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
	}
}

func TestNATSReportPublisherOmitsUnscopedDepartment(t *testing.T) {
	url, messages := startWireServer(t)
	conn := connectWire(t, url)
	publisher := NewNATSReportPublisher(conn, "iqac.reports.generated", testLogger())

	require.NoError(t, publisher.Publish(context.Background(), ReportEvent{ID: "rep-2", Department: "All Departments"}))
	require.NoError(t, conn.Flush())

	select {
	case msg := <-messages:
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Data, &decoded))
		require.NotContains(t, decoded, "department_id")
		require.NotContains(t, decoded, "correlation_id")
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
	}
}

func TestNATSReportPublisherDropsEventsWhenDisabled(t *testing.T) {
	require.NoError(t, NewNATSReportPublisher(nil, "iqac.reports.generated", testLogger()).Publish(context.Background(), ReportEvent{ID: "rep-3"}))

	url, messages := startWireServer(t)
	conn := connectWire(t, url)
	require.NoError(t, NewNATSReportPublisher(conn, "", testLogger()).Publish(context.Background(), ReportEvent{ID: "rep-4"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewNATSReportPublisher(conn, "iqac.reports.generated", testLogger()).Publish(ctx, ReportEvent{ID: "rep-5"})
	require.ErrorIs(t, err, context.Canceled)

	require.NoError(t, conn.Flush())
	select {
	case msg := <-messages:
		t.Fatalf("unexpected publish on %s", msg.Subject)
	case <-time.After(100 * time.Millisecond):
	}
}
