package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"miniraw/client"
	"miniraw/infrastructure/storage"
	"miniraw/internal"
	"miniraw/runtime"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

// BaseSpoolSuite runs a complete spooler in-process for every test: real
// TCP spool port, real control port, in-memory journal.
type BaseSpoolSuite struct {
	suite.Suite
	Config    Config
	Engine    *runtime.Engine
	OutputDir string
	db        *badger.DB
	served    chan error
}

func (s *BaseSpoolSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

func (s *BaseSpoolSuite) SetupTest() {
	s.OutputDir = s.T().TempDir()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	s.Require().NoError(err)
	s.db = db

	ports := s.freePorts(2)
	config := internal.Config{
		Host:              "127.0.0.1",
		Port:              ports[0],
		OutputDir:         s.OutputDir,
		FileExtension:     ".prn",
		ChunkSizeKB:       s.Config.ChunkSizeKB,
		LogLevel:          s.Config.LogLevel,
		JournalBufferSize: 64,
		RestartInterval:   50 * time.Millisecond,
		DebugPort:         ports[1],
	}
	s.Require().NoError(config.Validate())

	s.Engine = runtime.NewEngine(logs.GetLoggerFromString(config.LogLevel), config, db)
	s.Require().NoError(s.Engine.Start(context.Background()))
	s.served = make(chan error, 1)
	go func() { s.served <- s.Engine.Serve() }()
}

func (s *BaseSpoolSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.Require().NoError(s.Engine.Shutdown(ctx))
	s.Require().NoError(<-s.served)
	if s.Config.DebugJournal {
		s.dumpJournal()
	}
	_ = s.db.Close()
}

// Step prints a header for one stage of a scenario.
func (s *BaseSpoolSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Send streams payload as one print job and returns once the spooler
// closed the connection or the reset was sent.
func (s *BaseSpoolSuite) Send(payload []byte, opts client.Options) client.Result {
	ctx, cancel := context.WithTimeout(context.Background(), s.Config.JobTimeout)
	defer cancel()
	result, err := client.Send(ctx, s.Engine.Addr().String(), bytes.NewReader(payload), opts)
	s.Require().NoError(err)
	return result
}

// WaitForJobs blocks until count jobs reached the journal and returns them
// newest first.
func (s *BaseSpoolSuite) WaitForJobs(count int) []storage.JobRecord {
	var records []storage.JobRecord
	s.Require().Eventually(func() bool {
		var err error
		records, err = s.Engine.Jobs.GetJobs(0)
		return err == nil && len(records) >= count
	}, s.Config.JobTimeout, 10*time.Millisecond, "journal never reached %d jobs", count)
	return records
}

// SetDiscard flips the flag through the control server, like an operator.
func (s *BaseSpoolSuite) SetDiscard(enabled bool) {
	url := fmt.Sprintf("http://%s/discard?enabled=%t", s.Engine.ControlAddr(), enabled)
	resp, err := http.Post(url, "text/plain", nil)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var state struct {
		Enabled bool `json:"enabled"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&state))
	s.Require().Equal(enabled, state.Enabled)
}

// freePorts holds every temporary listener until all ports are known, so the
// returned ports are distinct.
func (s *BaseSpoolSuite) freePorts(n int) []int {
	ports := make([]int, 0, n)
	for i := 0; i < n; i++ {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		s.Require().NoError(err)
		defer ln.Close()
		ports = append(ports, ln.Addr().(*net.TCPAddr).Port)
	}
	return ports
}

func (s *BaseSpoolSuite) dumpJournal() {
	records, err := s.Engine.Jobs.GetJobs(0)
	if err != nil {
		s.T().Logf("journal unavailable: %v", err)
		return
	}
	out, _ := json.MarshalIndent(records, "", "  ")
	s.T().Log("JOURNAL:\n" + string(out))
}
