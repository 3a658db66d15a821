package engine

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-wtime/internal/config"
)

// RenderICS encodes the snapshot as an iCalendar feed holding one all-day
// event on the snapshot's calendar date.
//
// DTSTAMP carries the unshifted UTC instant; DTSTART carries the (possibly
// offset-adjusted) date. The fixed-width timestamp, ISO week and offset are
// attached as X- properties.
func RenderICS(s Snapshot) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	d := s.Date()
	timestamp := s.Format()

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, timestamp, config.ICalDomain))
	event.Props.SetText(config.PropSummary,
		fmt.Sprintf(config.FormatEvtSummary, s.Weekday(), d.Day, s.MonthName(), d.Year))
	event.Props.SetText(config.PropDescription, fmt.Sprintf(config.FormatDescription, s.ISOWeek()))

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(s.UTC())
	event.Props.Set(dtStamp)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(time.Date(int(d.Year), time.Month(d.Month), int(d.Day), 0, 0, 0, 0, time.UTC))
	event.Props.Set(dtStart)

	event.Props.SetText(config.PropXTimestamp, timestamp)
	event.Props.SetText(config.PropXISOWeek, strconv.FormatUint(s.ISOWeek(), 10))
	event.Props.SetText(config.PropXOffset, FormatOffset(int(s.OffsetHours())*3600))

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}
