package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/voyago-app/voyago-cli/api"
)

func (a *app) clientFlightsScreen(ctx context.Context) error {
	flights, err := a.api.Catalog.Flights(ctx)
	if err != nil {
		return errors.Wrap(err, "loading flights")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFLIGHT\tAIRLINE\tFROM\tTO\tDEPARTS\tSEATS\tPRICE\tSTATUS")
	for _, f := range flights {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%.2f\t%s\n",
			f.ID, f.Number, f.Airline, f.DepartureAirport, f.ArrivalAirport,
			f.DepartureTime, f.SeatsAvailable, f.BasePrice, f.Status)
	}
	return w.Flush()
}

func (a *app) clientHotelsScreen(ctx context.Context) error {
	hotels, err := a.api.Catalog.Hotels(ctx)
	if err != nil {
		return errors.Wrap(err, "loading hotels")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCITY\tCOUNTRY\tSTARS\tPRICE/NIGHT\tROOMS FREE")
	for _, h := range hotels {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%.2f\t%d\n",
			h.ID, h.Name, h.City, h.Country, h.Stars, h.PricePerNight, h.RoomsAvailable)
	}
	return w.Flush()
}

func (a *app) reservationsScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("reservations", pflag.ContinueOnError)
	csvPath := flags.String("csv", "", "export to a CSV file instead of printing")
	if err := flags.Parse(args); err != nil {
		return err
	}

	reservations, err := a.api.Reservations.Mine(ctx)
	if err != nil {
		return errors.Wrap(err, "loading reservations")
	}

	if *csvPath != "" {
		return exportReservationsCSV(*csvPath, reservations)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tDETAILS\tTOTAL\tSTATUS\tCREATED")
	for _, r := range reservations {
		details := r.FlightInfo
		if r.Type == api.ReservationHotel {
			details = fmt.Sprintf("%s %s → %s", r.HotelName, r.CheckIn, r.CheckOut)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%s\n", r.ID, r.Type, details, r.TotalPrice, r.Status, r.CreatedAt)
	}
	return w.Flush()
}

func exportReservationsCSV(path string, reservations []api.Reservation) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating CSV file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "type", "status", "totalPrice", "createdAt"}); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}
	for _, r := range reservations {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			string(r.Type),
			string(r.Status),
			strconv.FormatFloat(r.TotalPrice, 'f', 2, 64),
			r.CreatedAt,
		}
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, "writing CSV record")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flushing CSV")
}

func (a *app) reserveFlightScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("reserve-flight", pflag.ContinueOnError)
	flightID := flags.Int64("flight", 0, "flight id")
	seats := flags.Int("seats", 1, "number of seats")
	returnID := flags.Int64("return", 0, "optional return flight id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *flightID == 0 {
		return errors.New("reserve-flight requires --flight")
	}

	req := api.ReserveFlightRequest{FlightID: *flightID, Seats: *seats}
	if *returnID != 0 {
		req.ReturnFlightID = returnID
	}
	reservation, err := a.api.Reservations.ReserveFlight(ctx, req)
	if err != nil {
		return errors.Wrap(err, "reserving flight")
	}
	fmt.Printf("Reservation %d created, status %s, total %.2f. Pay with: voyago pay --type VOL --id %d\n",
		reservation.ID, reservation.Status, reservation.TotalPrice, reservation.ID)
	return nil
}

func (a *app) reserveHotelScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("reserve-hotel", pflag.ContinueOnError)
	hotelID := flags.Int64("hotel", 0, "hotel id")
	checkIn := flags.String("check-in", "", "check-in date YYYY-MM-DD")
	checkOut := flags.String("check-out", "", "check-out date YYYY-MM-DD")
	rooms := flags.Int("rooms", 1, "number of rooms")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *hotelID == 0 || *checkIn == "" || *checkOut == "" {
		return errors.New("reserve-hotel requires --hotel, --check-in and --check-out")
	}

	reservation, err := a.api.Reservations.ReserveHotel(ctx, api.ReserveHotelRequest{
		HotelID:  *hotelID,
		CheckIn:  *checkIn,
		CheckOut: *checkOut,
		Rooms:    *rooms,
	})
	if err != nil {
		return errors.Wrap(err, "reserving hotel")
	}
	fmt.Printf("Reservation %d created, status %s, total %.2f. Pay with: voyago pay --type HOTEL --id %d\n",
		reservation.ID, reservation.Status, reservation.TotalPrice, reservation.ID)
	return nil
}

func (a *app) cancelScreen(ctx context.Context, args []string) error {
	typ, id, err := parseTypeAndID("cancel", args)
	if err != nil {
		return err
	}
	if err := a.api.Reservations.Cancel(ctx, typ, id); err != nil {
		return errors.Wrap(err, "canceling reservation")
	}
	fmt.Printf("Reservation %d canceled.\n", id)
	return nil
}

func (a *app) payScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("pay", pflag.ContinueOnError)
	typ := flags.String("type", "", "reservation type: VOL or HOTEL")
	id := flags.Int64("id", 0, "reservation id")
	method := flags.String("method", string(api.PaymentCard), "payment method: CARD, CASH or MOBILE_MONEY")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *typ == "" || *id == 0 {
		return errors.New("pay requires --type and --id")
	}

	payment, err := a.api.Payments.Pay(ctx, api.ReservationType(*typ), *id, api.PayRequest{
		Method:  api.PaymentMethod(*method),
		Success: true,
	})
	if err != nil {
		return errors.Wrap(err, "payment failed")
	}
	fmt.Printf("Payment %s: %.2f via %s (%s)\n", payment.Status, payment.Amount, payment.Method, payment.Reference)
	return nil
}

func parseTypeAndID(name string, args []string) (api.ReservationType, int64, error) {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	typ := flags.String("type", "", "reservation type: VOL or HOTEL")
	id := flags.Int64("id", 0, "reservation id")
	if err := flags.Parse(args); err != nil {
		return "", 0, err
	}
	if *typ == "" || *id == 0 {
		return "", 0, errors.Errorf("%s requires --type and --id", name)
	}
	return api.ReservationType(*typ), *id, nil
}
