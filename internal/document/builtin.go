package document

import (
	"fmt"

	"github.com/spatialkit/anchorage/internal/strategy"
	"github.com/spatialkit/anchorage/pkg/types"
)

// DefaultRegistry returns a registry with the built-in strategy kinds:
// stationary, ray_refined, nudge_refined, native_anchor, and multi_parent.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	must := func(kind string, c Codec) {
		if err := r.Register(kind, c); err != nil {
			panic(err)
		}
	}
	must(strategy.KindStationary, Codec{Encode: encodeStationary, Decode: decodeStationary})
	must(strategy.KindRayRefined, Codec{Encode: encodeRayRefined, Decode: decodeRayRefined})
	must(strategy.KindNudgeRefined, Codec{Encode: encodeNudgeRefined, Decode: decodeNudgeRefined})
	must(strategy.KindNativeAnchor, Codec{Encode: encodeNativeAnchor, Decode: decodeNativeAnchor})
	must(strategy.KindMultiParent, Codec{Encode: encodeMultiParent, Decode: decodeMultiParent})
	return r
}

func decodeAccuracy(v *float64) types.Accuracy {
	if v == nil {
		return types.AccuracyUnknown
	}
	return types.Accuracy(*v)
}

// encodePlaced fills the shared record fields of a placed strategy: base
// pose and accuracy when resolved, plus the corrective offset if any.
func encodePlaced(kind string, state types.State, base types.Pose, acc types.Accuracy, offset *types.Offset) strategyJSON {
	rec := strategyJSON{Kind: kind}
	if state != types.StateUnresolved {
		b := base
		rec.Pose = &b
		if acc.Known() {
			v := float64(acc)
			rec.Accuracy = &v
		}
	}
	if offset != nil {
		o := *offset
		rec.Offset = &o
	}
	return rec
}

// placedRefiner is the construction surface shared by the refined
// strategies during decode.
type placedRefiner interface {
	Place(types.Pose, types.Accuracy) error
	strategy.Refiner
}

func decodePlaced(s placedRefiner, rec strategyJSON) error {
	if rec.Pose != nil {
		if err := s.Place(*rec.Pose, decodeAccuracy(rec.Accuracy)); err != nil {
			return err
		}
	}
	if rec.Offset != nil {
		s.SetOffset(*rec.Offset)
	}
	return nil
}

func encodeStationary(s types.Strategy, _ *encodeContext) (strategyJSON, error) {
	st, ok := s.(*strategy.Stationary)
	if !ok {
		return strategyJSON{}, fmt.Errorf("encode %s: unexpected type %T", strategy.KindStationary, s)
	}
	rec := strategyJSON{Kind: strategy.KindStationary}
	if st.State() != types.StateUnresolved {
		pose, err := st.Pose()
		if err != nil {
			return strategyJSON{}, err
		}
		rec.Pose = &pose
		if acc := st.Accuracy(); acc.Known() {
			v := float64(acc)
			rec.Accuracy = &v
		}
	}
	return rec, nil
}

func decodeStationary(rec strategyJSON, _ *decodeContext) (types.Strategy, error) {
	s := strategy.NewStationary()
	if rec.Pose != nil {
		if err := s.Place(*rec.Pose, decodeAccuracy(rec.Accuracy)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func encodeRayRefined(s types.Strategy, _ *encodeContext) (strategyJSON, error) {
	st, ok := s.(*strategy.RayRefined)
	if !ok {
		return strategyJSON{}, fmt.Errorf("encode %s: unexpected type %T", strategy.KindRayRefined, s)
	}
	offset := st.Offset()
	return encodePlaced(strategy.KindRayRefined, st.State(), st.Base(), st.Accuracy(), &offset), nil
}

func decodeRayRefined(rec strategyJSON, _ *decodeContext) (types.Strategy, error) {
	s := strategy.NewRayRefined()
	if err := decodePlaced(s, rec); err != nil {
		return nil, err
	}
	return s, nil
}

func encodeNudgeRefined(s types.Strategy, _ *encodeContext) (strategyJSON, error) {
	st, ok := s.(*strategy.NudgeRefined)
	if !ok {
		return strategyJSON{}, fmt.Errorf("encode %s: unexpected type %T", strategy.KindNudgeRefined, s)
	}
	offset := st.Offset()
	return encodePlaced(strategy.KindNudgeRefined, st.State(), st.Base(), st.Accuracy(), &offset), nil
}

func decodeNudgeRefined(rec strategyJSON, _ *decodeContext) (types.Strategy, error) {
	s := strategy.NewNudgeRefined()
	if err := decodePlaced(s, rec); err != nil {
		return nil, err
	}
	return s, nil
}

func encodeNativeAnchor(s types.Strategy, _ *encodeContext) (strategyJSON, error) {
	st, ok := s.(*strategy.NativeAnchor)
	if !ok {
		return strategyJSON{}, fmt.Errorf("encode %s: unexpected type %T", strategy.KindNativeAnchor, s)
	}
	// The native save phase runs before structural encode, so a saved
	// strategy always carries its anchor ID by now.
	if st.AnchorID() == "" {
		return strategyJSON{}, fmt.Errorf("encode %s: %w", strategy.KindNativeAnchor, types.ErrNoAnchorID)
	}
	return strategyJSON{Kind: strategy.KindNativeAnchor, AnchorID: st.AnchorID()}, nil
}

func decodeNativeAnchor(rec strategyJSON, dec *decodeContext) (types.Strategy, error) {
	if dec.native == nil {
		return nil, types.ErrNilNativeStore
	}
	return strategy.RestoreNativeAnchor(dec.native, rec.AnchorID)
}

func encodeMultiParent(s types.Strategy, enc *encodeContext) (strategyJSON, error) {
	st, ok := s.(*strategy.MultiParent)
	if !ok {
		return strategyJSON{}, fmt.Errorf("encode %s: unexpected type %T", strategy.KindMultiParent, s)
	}
	rec := strategyJSON{Kind: strategy.KindMultiParent}
	for _, c := range st.Candidates() {
		ref, err := enc.refFor(c.Frame)
		if err != nil {
			return strategyJSON{}, err
		}
		cj := candidateJSON{Ref: ref, Offset: c.Offset}
		if c.MinAccuracy.Known() {
			v := float64(c.MinAccuracy)
			cj.MinAccuracy = &v
		}
		rec.Candidates = append(rec.Candidates, cj)
	}
	return rec, nil
}

func decodeMultiParent(rec strategyJSON, dec *decodeContext) (types.Strategy, error) {
	candidates := make([]strategy.Candidate, 0, len(rec.Candidates))
	for _, cj := range rec.Candidates {
		frame, err := dec.frame(cj.Ref)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, strategy.Candidate{
			Frame:       frame,
			Offset:      cj.Offset,
			MinAccuracy: decodeAccuracy(cj.MinAccuracy),
		})
	}
	return strategy.NewMultiParent(candidates)
}
