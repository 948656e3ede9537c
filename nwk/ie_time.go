package nwk

import "fmt"

// ie_time.go covers TIME-DATE and LOCATION-AREA, the two IEs carrying
// network-supplied absolute time and cell/area identifiers.

// TimeDate is the TIME-DATE IE, BCD-encoded per EN 300 175-5 table 7.47a.
type TimeDate struct {
	Year, Month, Day       uint8
	Hour, Minute, Second   uint8
	Interpretation         uint8
}

func (TimeDate) Kind() IEType { return IETimeDate }

// LocationArea is the LOCATION-AREA IE: the paging/location area level
// this cell belongs to.
type LocationArea struct {
	IsLocationAreaLevel bool // false selects "handover reference"
	Level               uint8
}

func (LocationArea) Kind() IEType { return IELocationArea }

func init() {
	register(IETimeDate, ieMeta{
		name:  "TIME-DATE",
		parse: parseTimeDate,
		build: buildTimeDate,
		dump:  func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
	register(IELocationArea, ieMeta{
		name: "LOCATION-AREA",
		parse: func(dh *Handle, data []byte) (IE, error) {
			if len(data) < 1 {
				return nil, &ContentError{IE: IELocationArea, Reason: "empty content"}
			}
			return LocationArea{IsLocationAreaLevel: data[0]&0x80 != 0, Level: data[0] & 0x7f}, nil
		},
		build: func(dh *Handle, v IE) ([]byte, error) {
			la, ok := v.(LocationArea)
			if !ok {
				return nil, &ContentError{IE: IELocationArea, Reason: "wrong Go type"}
			}
			var flag byte
			if la.IsLocationAreaLevel {
				flag = 0x80
			}
			return []byte{flag | la.Level&0x7f}, nil
		},
		dump: func(v IE) string { return fmt.Sprintf("%+v", v) },
	})
}

func parseTimeDate(dh *Handle, data []byte) (IE, error) {
	if len(data) < 7 {
		return nil, &ContentError{IE: IETimeDate, Reason: "short content"}
	}
	return TimeDate{
		Year:           fromBCD(data[0]),
		Month:          fromBCD(data[1]),
		Day:            fromBCD(data[2]),
		Hour:           fromBCD(data[3]),
		Minute:         fromBCD(data[4]),
		Second:         fromBCD(data[5]),
		Interpretation: data[6] & 0x0f,
	}, nil
}

func buildTimeDate(dh *Handle, v IE) ([]byte, error) {
	td, ok := v.(TimeDate)
	if !ok {
		return nil, &ContentError{IE: IETimeDate, Reason: "wrong Go type"}
	}
	return []byte{
		toBCD(td.Year), toBCD(td.Month), toBCD(td.Day),
		toBCD(td.Hour), toBCD(td.Minute), toBCD(td.Second),
		td.Interpretation & 0x0f,
	}, nil
}

func fromBCD(b byte) uint8 { return (b>>4)*10 + b&0x0f }

func toBCD(v uint8) byte { return (v/10)<<4 | v%10 }
