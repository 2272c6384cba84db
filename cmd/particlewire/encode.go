package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vango-dev/particlewire/internal/api"
	"github.com/vango-dev/particlewire/internal/errors"
	"github.com/vango-dev/particlewire/pkg/particle"
	"github.com/vango-dev/particlewire/pkg/telemetry"
)

// encodeFlags mirror api.EncodeRequest and api.DataSpec.
type encodeFlags struct {
	request string
	asJSON  bool

	at     []float64
	offset []float32
	speed  float32
	amount int32

	kind      string
	color     []int
	to        []int
	size      float32
	random    bool
	note      int
	direction []float32
	material  string
	ordinal   int32
	meta      uint8
	count     int32
	damage    int16
	origin    []int32
	target    []int32
	entity    int32
	eyeHeight float32
	ticks     int32
	roll      float32
	delay     int32
}

func encodeCmd(flags *globalFlags) *cobra.Command {
	f := &encodeFlags{}

	cmd := &cobra.Command{
		Use:   "encode [effect]",
		Short: "Encode one effect and print the packet",
		Long: `Encode one effect at the configured protocol version and print the
packet fields and a hex dump of its wire form.

The request is either built from flags or read as JSON with --request
("-" reads stdin). The payload kind is taken from --kind, or inferred
from --color, --note and --direction.

Examples:
  particlewire encode FLAME --at 0,64,0 --amount 10
  particlewire encode REDSTONE --color 255,0,0 --size 1.5 --version 1.13
  particlewire encode BLOCK_CRACK --kind block --material stone --ordinal 1
  particlewire encode VIBRATION --kind vibration --target 10,64,0 --ticks 20
  echo '{"effect":"NOTE","data":{"kind":"note","note":6}}' | particlewire encode --request -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := f.encodeRequest(cmd, args)
			if err != nil {
				return err
			}
			req, err := body.Request()
			if err != nil {
				return err
			}

			e, err := setup(cmd.Context(), flags)
			if err != nil {
				return err
			}
			enc := telemetry.NewEncoder(particle.NewEncoder(e.catalog), telemetry.WithLogger(e.logger))
			pkt, err := enc.Encode(cmd.Context(), req)
			if err != nil {
				return errors.New(errors.CodeNotEncodable).
					WithSuggestion("Reason: " + particle.ReasonOf(err)).
					Wrap(err)
			}

			resp := api.NewPacketResponse(e.catalog, req, pkt)
			return printPacket(cmd.OutOrStdout(), resp, f.asJSON)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.request, "request", "r", "", "Read the request as JSON from a file (- for stdin)")
	fs.BoolVar(&f.asJSON, "json", false, "Print JSON")

	fs.Float64SliceVar(&f.at, "at", []float64{0, 0, 0}, "Position x,y,z")
	fs.Float32SliceVar(&f.offset, "offset", []float32{0, 0, 0}, "Offsets x,y,z")
	fs.Float32Var(&f.speed, "speed", 1, "Speed")
	fs.Int32Var(&f.amount, "amount", 0, "Amount")

	fs.StringVarP(&f.kind, "kind", "k", "", "Payload kind: directional, color, dust, dust_transition, note, block, item, vibration, roll, delay")
	fs.IntSliceVar(&f.color, "color", nil, "Color r,g,b (0-255)")
	fs.IntSliceVar(&f.to, "to", nil, "Transition target color r,g,b")
	fs.Float32Var(&f.size, "size", 1, "Dust size")
	fs.BoolVar(&f.random, "random", false, "Random color or note")
	fs.IntVar(&f.note, "note", 0, "Note index 0-24")
	fs.Float32SliceVar(&f.direction, "direction", nil, "Direction x,y,z")
	fs.StringVar(&f.material, "material", "", "Block or item key, e.g. stone")
	fs.Int32Var(&f.ordinal, "ordinal", 0, "Legacy material id")
	fs.Uint8Var(&f.meta, "meta", 0, "Legacy block data")
	fs.Int32Var(&f.count, "count", 1, "Item count")
	fs.Int16Var(&f.damage, "damage", 0, "Legacy item damage")
	fs.Int32SliceVar(&f.origin, "origin", nil, "Vibration origin block x,y,z")
	fs.Int32SliceVar(&f.target, "target", nil, "Vibration target block x,y,z")
	fs.Int32Var(&f.entity, "entity", 0, "Vibration target entity id")
	fs.Float32Var(&f.eyeHeight, "eye-height", 0, "Target entity eye height")
	fs.Int32Var(&f.ticks, "ticks", 0, "Vibration travel ticks")
	fs.Float32Var(&f.roll, "roll", 0, "Sculk charge roll in radians")
	fs.Int32Var(&f.delay, "delay", 0, "Shriek delay in ticks")

	return cmd
}

func (f *encodeFlags) encodeRequest(cmd *cobra.Command, args []string) (api.EncodeRequest, error) {
	var body api.EncodeRequest

	if f.request != "" {
		if len(args) > 0 {
			return body, errors.New(errors.CodeFlagCombination).
				WithDetail("Give the effect either as an argument or in --request, not both.")
		}
		var r io.Reader = cmd.InOrStdin()
		if f.request != "-" {
			file, err := os.Open(f.request)
			if err != nil {
				return body, errors.New(errors.CodePayloadInvalid).Wrap(err)
			}
			defer file.Close()
			r = file
		}
		if err := json.NewDecoder(r).Decode(&body); err != nil {
			return body, errors.New(errors.CodePayloadInvalid).Wrap(err)
		}
		return body, nil
	}

	if len(args) == 0 {
		return body, errors.New(errors.CodeMissingArgument).
			WithDetail("No effect was given.").
			WithSuggestion("Run 'particlewire effects' to list them")
	}

	at, err := triple(f.at, "at")
	if err != nil {
		return body, err
	}
	offset, err := triple(f.offset, "offset")
	if err != nil {
		return body, err
	}
	speed := f.speed
	body = api.EncodeRequest{
		Effect:   args[0],
		Position: at,
		Offset:   offset,
		Speed:    &speed,
		Amount:   f.amount,
	}

	spec, err := f.dataSpec(cmd.Flags())
	if err != nil {
		return body, err
	}
	body.Data = spec
	return body, nil
}

func (f *encodeFlags) dataSpec(fs *pflag.FlagSet) (*api.DataSpec, error) {
	kind := f.kind
	if kind == "" {
		switch {
		case fs.Changed("to"):
			kind = "dust_transition"
		case fs.Changed("color") && fs.Changed("size"):
			kind = "dust"
		case fs.Changed("color"), fs.Changed("random") && !fs.Changed("note"):
			kind = "color"
		case fs.Changed("note"):
			kind = "note"
		case fs.Changed("direction"):
			kind = "directional"
		default:
			return nil, nil
		}
	}

	spec := &api.DataSpec{
		Kind:      kind,
		Random:    f.random,
		Material:  f.material,
		Ordinal:   f.ordinal,
		Meta:      f.meta,
		Count:     f.count,
		Damage:    f.damage,
		EyeHeight: f.eyeHeight,
		Ticks:     f.ticks,
		Roll:      f.roll,
		Delay:     f.delay,
	}
	if fs.Changed("size") {
		size := f.size
		spec.Size = &size
	}
	if fs.Changed("note") {
		note := f.note
		spec.Note = &note
	}
	if fs.Changed("entity") {
		entity := f.entity
		spec.Entity = &entity
	}

	var err error
	if spec.Color, err = optionalTriple(f.color, "color"); err != nil {
		return nil, err
	}
	if spec.To, err = optionalTriple(f.to, "to"); err != nil {
		return nil, err
	}
	if spec.Direction, err = optionalTriple(f.direction, "direction"); err != nil {
		return nil, err
	}
	if spec.Origin, err = optionalTriple(f.origin, "origin"); err != nil {
		return nil, err
	}
	if spec.Target, err = optionalTriple(f.target, "target"); err != nil {
		return nil, err
	}
	return spec, nil
}

func triple[T any](v []T, flag string) ([3]T, error) {
	var out [3]T
	if len(v) != 3 {
		return out, errors.New(errors.CodeMissingArgument).
			WithDetail(fmt.Sprintf("--%s takes three comma-separated values, got %d.", flag, len(v)))
	}
	copy(out[:], v)
	return out, nil
}

func optionalTriple[T any](v []T, flag string) (*[3]T, error) {
	if v == nil {
		return nil, nil
	}
	out, err := triple(v, flag)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func printPacket(w io.Writer, resp api.PacketResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprintf(w, "Effect:    %s (%s)\n", resp.Effect, resp.Handle)
	fmt.Fprintf(w, "Protocol:  %s, tier %s\n", resp.Version, resp.Tier)
	fmt.Fprintf(w, "Position:  %v\n", resp.Position)
	fmt.Fprintf(w, "Offset:    %v\n", resp.Offset)
	fmt.Fprintf(w, "Speed:     %v\n", resp.Speed)
	fmt.Fprintf(w, "Amount:    %d\n", resp.Amount)
	if resp.Slot.Param != nil {
		fmt.Fprintf(w, "Slot:      %s %+v\n", resp.Slot.ParamKind(), resp.Slot.Param)
	}
	if resp.Legacy != nil {
		fmt.Fprintf(w, "Legacy:    %v\n", resp.Legacy)
	}
	fmt.Fprintf(w, "Bytes:     %d\n\n", resp.Size)
	fmt.Fprint(w, resp.Hex())
	return nil
}
