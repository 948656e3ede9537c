package nwk

import "sort"

// msg.go is the message descriptor engine, the Go counterpart of
// dect_parse_sfmt_msg/dect_build_sfmt_msg: it walks a MsgDesc table,
// driving header.go to peel or wrap each wire IE and ie.go to parse or
// build its content, enforcing the per-direction MANDATORY/OPTIONAL/NONE
// discipline and the REPEAT/END cardinality rules along the way.

// IEStatus is the per-direction tolerance a message descriptor entry
// declares for one IE slot.
type IEStatus uint8

const (
	// StatusNone means this IE must not appear in this direction.
	StatusNone IEStatus = iota
	// StatusMandatory means this IE must appear exactly once (or, for a
	// repeat group, at least once) in this direction.
	StatusMandatory
	// StatusOptional means this IE may or may not appear.
	StatusOptional
)

// IEDescFlag marks special traversal behaviour for a descriptor entry.
type IEDescFlag uint8

const (
	// FlagNone is a plain, singly-occurring IE slot.
	FlagNone IEDescFlag = iota
	// FlagRepeat marks a slot that may recur; a REPEAT-INDICATOR IE may
	// precede the group to declare its list semantics.
	FlagRepeat
	// FlagEnd marks the final entry of the descriptor table (mirrors the
	// original's explicit list terminator).
	FlagEnd
)

// IEDesc is one row of a message descriptor table: which IE, and what
// each direction requires or forbids of it.
type IEDesc struct {
	IE     IEType
	FPToPP IEStatus
	PPToFP IEStatus
	Flag   IEDescFlag
}

// MsgDesc is the ordered list of IE slots for one message type, plus its
// own identifying name for error messages and trace logging.
type MsgDesc struct {
	Name string
	IEs  []IEDesc
}

// direction of a single parse/build call: which field of IEDesc applies.
type direction uint8

const (
	dirFPToPP direction = iota
	dirPPToFP
)

func directionFor(mode Mode, sending bool) direction {
	// A handle in ModeFP sends FP->PP and receives PP->FP, and vice
	// versa for ModePP.
	if (mode == ModeFP) == sending {
		return dirFPToPP
	}
	return dirPPToFP
}

func (d IEDesc) status(dir direction) IEStatus {
	if dir == dirFPToPP {
		return d.FPToPP
	}
	return d.PPToFP
}

// ParsedIE is one decoded slot of a parsed message: the matched
// descriptor entry plus every occurrence found for it (more than one
// only when Flag == FlagRepeat).
type ParsedIE struct {
	Desc   IEDesc
	Values []IE
}

// ParseMessage decodes data (the NWK message body, i.e. everything after
// the protocol discriminator/message type octets) against desc,
// following the current descriptor-table position in order, exactly as
// dect_parse_sfmt_msg iterates its descriptor array rather than
// dispatching on incoming IE identifier.
func (dh *Handle) ParseMessage(desc *MsgDesc, data []byte, sending bool) ([]ParsedIE, error) {
	dir := directionFor(dh.Mode, sending)
	out := make([]ParsedIE, 0, len(desc.IEs))

	pos := 0
	descIdx := 0

	peek := func() (RawIE, bool, error) {
		if pos >= len(data) {
			return RawIE{}, false, nil
		}
		raw, err := ParseIEHeader(data[pos:])
		if err != nil {
			return RawIE{}, false, err
		}
		return raw, true, nil
	}

	for descIdx < len(desc.IEs) {
		d := desc.IEs[descIdx]
		status := d.status(dir)

		raw, present, err := peek()
		if err != nil {
			return nil, err
		}

		matches := present && raw.ID == d.IE

		if !matches {
			switch status {
			case StatusMandatory:
				return nil, &MandatoryIEMissingError{IE: d.IE}
			case StatusNone, StatusOptional:
				descIdx++
				continue
			}
		}

		if status == StatusNone {
			return nil, &InvalidIEError{IE: d.IE, Reason: "present but forbidden in this direction"}
		}

		entry := ParsedIE{Desc: d}
		for matches {
			v, perr := dh.Parse(raw.ID, raw.Content)
			if perr != nil {
				if status == StatusMandatory {
					return nil, &MandatoryIEError{IE: d.IE, Err: perr}
				}
				return nil, perr
			}
			entry.Values = append(entry.Values, v)
			pos += raw.WireLen

			if d.Flag != FlagRepeat {
				break
			}
			raw, present, err = peek()
			if err != nil {
				return nil, err
			}
			matches = present && raw.ID == d.IE
		}
		out = append(out, entry)
		descIdx++
	}

	if pos < len(data) {
		return nil, &MalformedHeaderError{Reason: "trailing bytes after last descriptor slot"}
	}
	return out, nil
}

// BuildMessage assembles the wire bytes for the IEs in values (keyed by
// IEType; a FlagRepeat slot maps to a slice with more than one entry
// handled by the caller collapsing into one IE key position) against
// desc, in descriptor order, mirroring dect_build_sfmt_msg's traversal
// and its "a repeat group builds nothing when empty" cardinality rule.
func (dh *Handle) BuildMessage(desc *MsgDesc, values map[IEType][]IE, sending bool) ([]byte, error) {
	dir := directionFor(dh.Mode, sending)
	var out []byte

	for i, d := range desc.IEs {
		status := d.status(dir)
		vs := values[d.IE]

		// A REPEAT-INDICATOR immediately ahead of a FlagRepeat group has
		// its presence derived from the group's member count, not from
		// whatever the caller stuffed into values[IERepeatIndicator]:
		// zero or one member collapses to no indicator at all, mirroring
		// dect_build_sfmt_msg's repeat-group cardinality rule.
		if d.IE == IERepeatIndicator && i+1 < len(desc.IEs) && desc.IEs[i+1].Flag == FlagRepeat {
			if len(values[desc.IEs[i+1].IE]) < 2 {
				continue
			}
			if len(vs) == 0 {
				vs = []IE{RepeatIndicator{ListType: RepeatNonPrioritized}}
			}
		}

		if status == StatusNone {
			if len(vs) > 0 {
				return nil, &InvalidIEError{IE: d.IE, Reason: "populated but forbidden in this direction"}
			}
			continue
		}
		if len(vs) == 0 {
			if status == StatusMandatory {
				return nil, &MandatoryIEMissingError{IE: d.IE}
			}
			continue
		}
		if d.Flag != FlagRepeat && len(vs) > 1 {
			return nil, &InvalidIEError{IE: d.IE, Reason: "multiple values given for a non-repeating slot"}
		}

		for _, v := range vs {
			content, err := dh.Build(v)
			if err != nil {
				return nil, err
			}
			out, err = BuildIE(out, d.IE, content)
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// sortedIETypes lists the IE types a values map populates in ascending
// identifier order.
func sortedIETypes(values map[IEType][]IE) []IEType {
	out := make([]IEType, 0, len(values))
	for t := range values {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
