package blackball

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/crypto/sha3"
	"google.golang.org/protobuf/proto"

	"github.com/mezonai/blackball/logx"
	pb "github.com/mezonai/blackball/proto"
	"github.com/mezonai/blackball/types"
)

// StateFileName is the name of the state file inside the blackball directory.
const StateFileName = "blackball-state.bin"

// stateFormatVersion is bumped whenever a field changes meaning. New fields get
// new numbers and are skipped by older readers.
const stateFormatVersion = 1

var stateMagic = []byte("BBST")

const checksumSize = 32

var (
	ErrBadStateMagic      = errors.New("not a blackball state file")
	ErrStateChecksum      = errors.New("state checksum mismatch")
	ErrUnsupportedVersion = errors.New("unsupported state version")
)

// LoadState reads the state file at path. A missing or unreadable file yields
// an empty state; a partially decoded state is never returned.
func LoadState(path string) *State {
	logx.Info("STATE", "Loading state data from ", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logx.Info("STATE", "No state data found, starting from scratch")
		} else {
			logx.Error("STATE", fmt.Sprintf("Failed to read state data from %s, restarting from scratch: %v", path, err))
		}
		return NewState()
	}

	st, err := DecodeState(data)
	if err != nil {
		logx.Error("STATE", fmt.Sprintf("Failed to load state data from %s, restarting from scratch: %v", path, err))
		return NewState()
	}
	return st
}

// StoreState writes the state atomically, replacing the previous file.
func StoreState(path string, st *State) error {
	logx.Info("STATE", "Saving state data to ", path)

	data, err := EncodeState(st)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("state create directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("state open tmp: %w", err)
	}
	_, werr := f.Write(data)
	serr := f.Sync()
	cerr := f.Close()
	if werr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("state write tmp: %w", werr)
	}
	if serr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("state fsync tmp: %w", serr)
	}
	if cerr != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("state close tmp: %w", cerr)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("state rename: %w", err)
	}
	return nil
}

// EncodeState serializes the state as magic, protobuf body and Keccak-256 of
// the body. Map entries are written in sorted order so equal states produce
// equal files.
func EncodeState(st *State) ([]byte, error) {
	body, err := proto.MarshalOptions{Deterministic: true}.Marshal(toPbState(st))
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}

	out := make([]byte, 0, len(stateMagic)+len(body)+checksumSize)
	out = append(out, stateMagic...)
	out = append(out, body...)
	return append(out, checksum(body)...), nil
}

// DecodeState parses a state file. Any error means the whole blob is rejected.
func DecodeState(data []byte) (*State, error) {
	if len(data) < len(stateMagic)+checksumSize || !bytes.Equal(data[:len(stateMagic)], stateMagic) {
		return nil, ErrBadStateMagic
	}
	body := data[len(stateMagic) : len(data)-checksumSize]
	if !bytes.Equal(checksum(body), data[len(data)-checksumSize:]) {
		return nil, ErrStateChecksum
	}

	var pbState pb.BlackballState
	if err := proto.Unmarshal(body, &pbState); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	if pbState.Version == 0 || pbState.Version > stateFormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, pbState.Version)
	}
	return fromPbState(&pbState)
}

func checksum(body []byte) []byte {
	k := sha3.NewLegacyKeccak256()
	k.Write(body)
	return k.Sum(nil)
}

func toPbState(st *State) *pb.BlackballState {
	out := &pb.BlackballState{Version: stateFormatVersion}

	kis := make([]types.KeyImage, 0, len(st.RelativeRings))
	for ki := range st.RelativeRings {
		kis = append(kis, ki)
	}
	sort.Slice(kis, func(i, j int) bool { return bytes.Compare(kis[i][:], kis[j][:]) < 0 })
	for _, ki := range kis {
		out.RelativeRings = append(out.RelativeRings, &pb.RelativeRing{
			KeyImage: bytes.Clone(ki[:]),
			Offsets:  st.RelativeRings[ki],
		})
	}

	outputs := make([]types.OutputRef, 0, len(st.Outputs))
	for ref := range st.Outputs {
		outputs = append(outputs, ref)
	}
	sortOutputRefs(outputs)
	for _, ref := range outputs {
		members := make([]types.RingMember, 0, len(st.Outputs[ref]))
		for m := range st.Outputs[ref] {
			members = append(members, m)
		}
		sort.Slice(members, func(i, j int) bool {
			if c := bytes.Compare(members[i].TxID[:], members[j].TxID[:]); c != 0 {
				return c < 0
			}
			return bytes.Compare(members[i].KeyImage[:], members[j].KeyImage[:]) < 0
		})

		entry := &pb.OutputMembers{Output: toPbOutputRef(ref)}
		for _, m := range members {
			entry.Members = append(entry.Members, &pb.RingMember{
				Txid:     bytes.Clone(m.TxID[:]),
				KeyImage: bytes.Clone(m.KeyImage[:]),
			})
		}
		out.Outputs = append(out.Outputs, entry)
	}

	sources := make([]string, 0, len(st.ProcessedHeights))
	for src := range st.ProcessedHeights {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	for _, src := range sources {
		out.ProcessedHeights = append(out.ProcessedHeights, &pb.Checkpoint{Source: src, Next: st.ProcessedHeights[src]})
	}

	for _, ref := range st.SpentOutputs() {
		out.Spent = append(out.Spent, toPbOutputRef(ref))
	}

	ringKeys := make([]types.RingKey, 0, len(st.RingInstances))
	for k := range st.RingInstances {
		ringKeys = append(ringKeys, k)
	}
	sort.Slice(ringKeys, func(i, j int) bool { return ringKeys[i] < ringKeys[j] })
	for _, k := range ringKeys {
		out.RingInstances = append(out.RingInstances, &pb.RingInstance{Offsets: k.Ring(), Count: st.RingInstances[k]})
	}

	newly := make([]types.OutputRef, 0, len(st.NewlySpent))
	for ref := range st.NewlySpent {
		newly = append(newly, ref)
	}
	sortOutputRefs(newly)
	for _, ref := range newly {
		out.NewlySpent = append(out.NewlySpent, &pb.QueuedOutput{Output: toPbOutputRef(ref), Processed: st.NewlySpent[ref]})
	}
	return out
}

func fromPbState(in *pb.BlackballState) (*State, error) {
	st := NewState()

	for _, rr := range in.GetRelativeRings() {
		ki, err := hash32(rr.GetKeyImage(), "key image")
		if err != nil {
			return nil, err
		}
		if len(rr.GetOffsets()) == 0 {
			return nil, errors.New("relative ring: empty ring")
		}
		st.RelativeRings[ki] = types.Ring(rr.GetOffsets())
	}

	for _, om := range in.GetOutputs() {
		ref, err := fromPbOutputRef(om.GetOutput())
		if err != nil {
			return nil, err
		}
		members := make(map[types.RingMember]struct{}, len(om.GetMembers()))
		for _, m := range om.GetMembers() {
			txid, err := hash32(m.GetTxid(), "txid")
			if err != nil {
				return nil, err
			}
			ki, err := hash32(m.GetKeyImage(), "key image")
			if err != nil {
				return nil, err
			}
			members[types.RingMember{TxID: txid, KeyImage: ki}] = struct{}{}
		}
		st.Outputs[ref] = members
	}

	for _, cp := range in.GetProcessedHeights() {
		st.ProcessedHeights[cp.GetSource()] = cp.GetNext()
	}

	for _, s := range in.GetSpent() {
		ref, err := fromPbOutputRef(s)
		if err != nil {
			return nil, err
		}
		st.Spent[ref] = struct{}{}
	}

	for _, ri := range in.GetRingInstances() {
		if len(ri.GetOffsets()) == 0 {
			return nil, errors.New("ring instance: empty ring")
		}
		st.RingInstances[types.Ring(ri.GetOffsets()).Key()] = ri.GetCount()
	}

	for _, q := range in.GetNewlySpent() {
		ref, err := fromPbOutputRef(q.GetOutput())
		if err != nil {
			return nil, err
		}
		st.NewlySpent[ref] = q.GetProcessed()
	}
	return st, nil
}

func toPbOutputRef(ref types.OutputRef) *pb.OutputRef {
	return &pb.OutputRef{Amount: ref.Amount, Index: ref.Index}
}

func fromPbOutputRef(in *pb.OutputRef) (types.OutputRef, error) {
	if in == nil {
		return types.OutputRef{}, errors.New("missing output reference")
	}
	return types.OutputRef{Amount: in.GetAmount(), Index: in.GetIndex()}, nil
}

func hash32(b []byte, what string) ([types.HashSize]byte, error) {
	var h [types.HashSize]byte
	if len(b) != types.HashSize {
		return h, fmt.Errorf("%s: bad length %d", what, len(b))
	}
	copy(h[:], b)
	return h, nil
}
