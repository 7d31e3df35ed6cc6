// internal/server/server.go
package server

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/goburrow/serial"

	"github.com/frankenbubble/twc3-modbus/internal/dispatch"
	"github.com/frankenbubble/twc3-modbus/internal/logger"
	"github.com/frankenbubble/twc3-modbus/internal/rtu"
)

// Identity is the device identification served over FC 0x2B,
// basic category: vendor name, product code, revision.
type Identity struct {
	Vendor   string
	Product  string
	Revision string
}

// Config is the runtime config the server needs.
type Config struct {
	SlaveID  uint8
	Identity Identity
}

// Server owns the serial side of the emulator: burst framing, checksum
// and slave id filtering, reply writes. Register semantics live behind
// the resolver.
//
// The serve loop is single threaded. One request is fully handled
// before the next byte is read, so the resolver never sees concurrent
// calls.
type Server struct {
	port     io.ReadWriteCloser
	resolver dispatch.RegisterReader
	slaveID  uint8
	identity Identity
	log      *logger.Logger

	stats  Stats
	closed int32
}

// New creates a server around an open port.
func New(port io.ReadWriteCloser, resolver dispatch.RegisterReader, cfg Config, log *logger.Logger) (*Server, error) {
	if port == nil {
		return nil, errors.New("server: port required")
	}
	if resolver == nil {
		return nil, errors.New("server: resolver required")
	}
	if log == nil {
		return nil, errors.New("server: logger required")
	}
	if cfg.SlaveID == 0 || cfg.SlaveID > rtu.MaxSlaveID {
		return nil, errors.New("server: slave id must be 1..247")
	}
	return &Server{
		port:     port,
		resolver: resolver,
		slaveID:  cfg.SlaveID,
		identity: cfg.Identity,
		log:      log,
	}, nil
}

// Serve reads request bursts until the port fails or Close is called.
//
// Framing uses the port read timeout as the inter-frame gap: a timeout
// while a partial frame sits in the buffer means the line went quiet
// mid-frame, and the fragment is dropped.
func (s *Server) Serve() error {
	buf := make([]byte, rtu.MaxFrameSize)
	fill := 0

	for {
		n, err := s.port.Read(buf[fill:])
		if n > 0 {
			fill += n
			fill = s.consume(buf, fill)
		}
		if err != nil {
			if errors.Is(err, serial.ErrTimeout) {
				if fill > 0 {
					atomic.AddInt64(&s.stats.Framing, 1)
					s.log.Debugf("server: dropping %d stray bytes on frame gap", fill)
					fill = 0
				}
				continue
			}
			if atomic.LoadInt32(&s.closed) == 1 {
				return nil
			}
			return fmt.Errorf("server: read: %w", err)
		}
		if fill == len(buf) {
			// Buffer full without a recognizable frame: resync.
			atomic.AddInt64(&s.stats.Framing, 1)
			fill = 0
		}
	}
}

// Close closes the port, unblocking Serve.
func (s *Server) Close() error {
	atomic.StoreInt32(&s.closed, 1)
	return s.port.Close()
}

// consume handles every complete frame at the front of buf and returns
// how many bytes of an incomplete tail remain.
func (s *Server) consume(buf []byte, fill int) int {
	for fill > 0 {
		want := rtu.RequestSize(buf[:fill])
		if want == 0 {
			// Unknown function code. The only safe recovery is to
			// drop the burst and resync on line silence.
			atomic.AddInt64(&s.stats.Framing, 1)
			s.log.Debugf("server: unknown function 0x%02X, dropping burst", buf[1])
			return 0
		}
		if fill < want {
			return fill
		}

		frame := buf[:want]
		if !rtu.VerifyCRC(frame) {
			atomic.AddInt64(&s.stats.CrcErrors, 1)
			s.log.Debugf("server: crc mismatch, dropping burst: %s", rtu.FrameHex(frame))
			return 0
		}
		s.handle(frame)

		copy(buf, buf[want:fill])
		fill -= want
	}
	return 0
}

// handle routes one CRC-valid frame.
func (s *Server) handle(frame []byte) {
	if frame[0] != s.slaveID {
		// Another slave's request. It answers, we stay quiet.
		atomic.AddInt64(&s.stats.IDDrops, 1)
		return
	}
	atomic.AddInt64(&s.stats.Requests, 1)
	s.log.Debugf("server: request %s", rtu.FrameHex(frame))

	switch frame[1] {
	case rtu.FuncReadCoils, rtu.FuncReadDiscreteInputs, rtu.FuncReadHolding, rtu.FuncReadInput:
		s.handleRead(frame)
	case rtu.FuncEncapsulated:
		s.handleIdentity(frame)
	default:
		// Writes and anything else are not emulated. Rejecting them
		// loudly is transport policy: a read miss stays silent, but a
		// master trying to write deserves to hear about it.
		s.exception(frame[1], rtu.ExcIllegalFunction)
	}
}

func (s *Server) handleRead(frame []byte) {
	req, err := rtu.DecodeRequest(frame)
	if err != nil {
		atomic.AddInt64(&s.stats.Framing, 1)
		return
	}

	limit := uint16(125)
	if req.Function == rtu.FuncReadCoils || req.Function == rtu.FuncReadDiscreteInputs {
		limit = 2000
	}
	if req.Quantity == 0 || req.Quantity > limit {
		s.exception(req.Function, rtu.ExcIllegalValue)
		return
	}

	values, err := s.resolver.Resolve(dispatch.Request{
		Function: req.Function,
		Address:  req.Address,
		Quantity: req.Quantity,
	})
	if err != nil {
		// Silence, whatever the reason. The resolver already recorded it.
		atomic.AddInt64(&s.stats.Silent, 1)
		return
	}

	switch req.Function {
	case rtu.FuncReadCoils, rtu.FuncReadDiscreteInputs:
		s.reply(rtu.BuildBitReply(s.slaveID, req.Function, values))
	default:
		s.reply(rtu.BuildReadReply(s.slaveID, req.Function, values))
	}
}

// handleIdentity serves Read Device Identification, basic category.
//
// Reply layout after the MEI header: read code echo, conformity 0x01,
// more-follows 0x00, next object 0x00, object count, then one
// (id, length, bytes) triple per object.
func (s *Server) handleIdentity(frame []byte) {
	if len(frame) < 7 || frame[2] != rtu.MEIReadDeviceID {
		s.exception(rtu.FuncEncapsulated, rtu.ExcIllegalFunction)
		return
	}

	objects := []string{s.identity.Vendor, s.identity.Product, s.identity.Revision}

	out := make([]byte, 0, 10+len(s.identity.Vendor)+len(s.identity.Product)+len(s.identity.Revision))
	out = append(out,
		s.slaveID,
		rtu.FuncEncapsulated,
		rtu.MEIReadDeviceID,
		frame[3], // read code echo
		0x01,     // conformity: basic identification
		0x00,     // more follows
		0x00,     // next object id
		uint8(len(objects)),
	)
	for i, v := range objects {
		out = append(out, uint8(i), uint8(len(v)))
		out = append(out, v...)
	}
	s.reply(rtu.AppendCRC(out))
}

func (s *Server) exception(function, code uint8) {
	if _, err := s.port.Write(rtu.BuildExceptionReply(s.slaveID, function, code)); err != nil {
		s.log.Errorf("server: write exception: %v", err)
		return
	}
	atomic.AddInt64(&s.stats.Exceptions, 1)
}

func (s *Server) reply(frame []byte) {
	if _, err := s.port.Write(frame); err != nil {
		s.log.Errorf("server: write reply: %v", err)
		return
	}
	atomic.AddInt64(&s.stats.Replies, 1)
	s.log.Debugf("server: reply %s", rtu.FrameHex(frame))
}
