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
	"github.com/voyago-app/voyago-cli/internal/utils"
	"github.com/voyago-app/voyago-cli/session"
)

func (a *app) adminReservationsScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("admin reservations", pflag.ContinueOnError)
	csvPath := flags.String("csv", "", "export to a CSV file instead of printing")
	cancelID := flags.Int64("cancel", 0, "cancel the reservation with this id (with --type)")
	deleteID := flags.Int64("delete", 0, "delete the reservation with this id (with --type)")
	typ := flags.String("type", "", "reservation type for --cancel/--delete: VOL or HOTEL")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *cancelID != 0 {
		if err := a.api.Admin.Cancel(ctx, api.ReservationType(*typ), *cancelID); err != nil {
			return errors.Wrap(err, "canceling reservation")
		}
		fmt.Printf("Reservation %d canceled.\n", *cancelID)
		return nil
	}
	if *deleteID != 0 {
		if err := a.api.Admin.Delete(ctx, api.ReservationType(*typ), *deleteID); err != nil {
			return errors.Wrap(err, "deleting reservation")
		}
		fmt.Printf("Reservation %d deleted.\n", *deleteID)
		return nil
	}

	rows, err := a.api.Admin.All(ctx)
	if err != nil {
		return errors.Wrap(err, "loading reservations")
	}

	if *csvPath != "" {
		return exportAdminReservationsCSV(*csvPath, rows)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REF\tID\tCLIENT\tEMAIL\tTYPE\tAMOUNT\tSTATUS\tCREATED")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
			r.Ref, r.ID, r.ClientName, r.ClientEmail, r.Type, r.Amount, r.Status, r.CreatedAt)
	}
	return w.Flush()
}

func exportAdminReservationsCSV(path string, rows []api.AdminReservationRow) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating CSV file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ref", "id", "clientName", "clientEmail", "type", "amount", "status", "createdAt"}); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}
	for _, r := range rows {
		record := []string{
			r.Ref,
			strconv.FormatInt(r.ID, 10),
			r.ClientName,
			r.ClientEmail,
			string(r.Type),
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			string(r.Status),
			r.CreatedAt,
		}
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, "writing CSV record")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flushing CSV")
}

func (a *app) adminFlightsScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("admin flights", pflag.ContinueOnError)
	deleteID := flags.Int64("delete", 0, "delete the flight with this id")
	create := flags.Bool("create", false, "create a flight from the flags below")
	number := flags.String("number", "", "flight number")
	airline := flags.String("airline", "", "airline name")
	from := flags.String("from", "", "departure airport")
	to := flags.String("to", "", "arrival airport")
	departs := flags.String("departs", "", "departure time, ISO format")
	arrives := flags.String("arrives", "", "arrival time, ISO format")
	seats := flags.Int("seats", 0, "seats available")
	price := flags.Float64("price", 0, "base price")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *deleteID != 0 {
		if err := a.api.Flights.Delete(ctx, *deleteID); err != nil {
			return errors.Wrap(err, "deleting flight")
		}
		fmt.Printf("Flight %d deleted.\n", *deleteID)
		return nil
	}

	if *create {
		flight, err := a.api.Flights.Create(ctx, api.Flight{
			Number:           *number,
			Airline:          *airline,
			DepartureAirport: *from,
			ArrivalAirport:   *to,
			DepartureTime:    *departs,
			ArrivalTime:      *arrives,
			SeatsAvailable:   *seats,
			BasePrice:        *price,
			Status:           api.FlightAvailable,
		})
		if err != nil {
			return errors.Wrap(err, "creating flight")
		}
		fmt.Printf("Flight %d (%s) created.\n", flight.ID, flight.Number)
		return nil
	}

	flights, err := a.api.Flights.List(ctx)
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

func (a *app) adminHotelsScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("admin hotels", pflag.ContinueOnError)
	deleteID := flags.Int64("delete", 0, "delete the hotel with this id")
	create := flags.Bool("create", false, "create a hotel from the flags below")
	name := flags.String("name", "", "hotel name")
	address := flags.String("address", "", "street address")
	city := flags.String("city", "", "city")
	country := flags.String("country", "", "country")
	stars := flags.Int("stars", 3, "star rating")
	price := flags.Float64("price", 0, "price per night")
	rooms := flags.Int("rooms", 0, "total rooms")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *deleteID != 0 {
		if err := a.api.Hotels.Delete(ctx, *deleteID); err != nil {
			return errors.Wrap(err, "deleting hotel")
		}
		fmt.Printf("Hotel %d deleted.\n", *deleteID)
		return nil
	}

	if *create {
		hotel, err := a.api.Hotels.Create(ctx, api.Hotel{
			Name:           *name,
			Address:        *address,
			City:           *city,
			Country:        *country,
			Stars:          *stars,
			PricePerNight:  *price,
			RoomsTotal:     *rooms,
			RoomsAvailable: *rooms,
			Amenities:      []string{},
		})
		if err != nil {
			return errors.Wrap(err, "creating hotel")
		}
		fmt.Printf("Hotel %d (%s) created.\n", hotel.ID, hotel.Name)
		return nil
	}

	hotels, err := a.api.Hotels.List(ctx)
	if err != nil {
		return errors.Wrap(err, "loading hotels")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCITY\tCOUNTRY\tSTARS\tPRICE/NIGHT\tROOMS\tFREE")
	for _, h := range hotels {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%.2f\t%d\t%d\n",
			h.ID, h.Name, h.City, h.Country, h.Stars, h.PricePerNight, h.RoomsTotal, h.RoomsAvailable)
	}
	return w.Flush()
}

func (a *app) adminUsersScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("admin users", pflag.ContinueOnError)
	create := flags.Bool("create", false, "create a user from the flags below")
	name := flags.String("name", "", "full name")
	email := flags.String("email", "", "email")
	password := flags.String("password", "", "initial password")
	role := flags.String("role", string(session.RoleClient), "role: ADMIN or CLIENT")
	enableID := flags.Int64("enable", 0, "enable the account with this id")
	disableID := flags.Int64("disable", 0, "disable the account with this id")
	deleteID := flags.Int64("delete", 0, "delete the account with this id")
	if err := flags.Parse(args); err != nil {
		return err
	}

	switch {
	case *create:
		user, err := a.api.Users.Create(ctx, api.UserCreateRequest{
			FullName: *name,
			Email:    *email,
			Password: *password,
			Role:     session.Role(*role),
			Enabled:  utils.Ptr(true),
		})
		if err != nil {
			return errors.Wrap(err, "creating user")
		}
		fmt.Printf("User %d <%s> created.\n", user.ID, user.Email)
		return nil
	case *enableID != 0:
		user, err := a.api.Users.SetEnabled(ctx, *enableID, true)
		if err != nil {
			return errors.Wrap(err, "enabling user")
		}
		fmt.Printf("User %d enabled.\n", user.ID)
		return nil
	case *disableID != 0:
		user, err := a.api.Users.SetEnabled(ctx, *disableID, false)
		if err != nil {
			return errors.Wrap(err, "disabling user")
		}
		fmt.Printf("User %d disabled.\n", user.ID)
		return nil
	case *deleteID != 0:
		if err := a.api.Users.Delete(ctx, *deleteID); err != nil {
			return errors.Wrap(err, "deleting user")
		}
		fmt.Printf("User %d deleted.\n", *deleteID)
		return nil
	}

	users, err := a.api.Users.List(ctx)
	if err != nil {
		return errors.Wrap(err, "loading users")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tENABLED")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.FullName, u.Email, u.Role, u.Enabled)
	}
	return w.Flush()
}

func (a *app) adminStatsScreen(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("admin stats", pflag.ContinueOnError)
	from := flags.String("from", "", "start date YYYY-MM-DD")
	to := flags.String("to", "", "end date YYYY-MM-DD")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *from == "" || *to == "" {
		return errors.New("admin stats requires --from and --to")
	}

	stats, err := a.api.Stats.Reservations(ctx, *from, *to)
	if err != nil {
		return errors.Wrap(err, "loading stats")
	}

	fmt.Printf("Reservations %s → %s\n", *from, *to)
	fmt.Printf("  total %d (flights %d, hotels %d)\n", stats.TotalCount, stats.VolCount, stats.HotelCount)
	fmt.Printf("  pending %d, confirmed %d, canceled %d (cancel rate %.1f%%)\n",
		stats.PendingCount, stats.ConfirmedCount, stats.CanceledCount, stats.CancelRatePercent)
	fmt.Printf("  confirmed revenue %.2f\n", stats.RevenueConfirmedTotal)

	if len(stats.Monthly) > 0 {
		fmt.Println("  monthly:")
		for _, m := range stats.Monthly {
			fmt.Printf("    %s  count %d  revenue %.2f\n", m.Month, m.Count, m.Revenue)
		}
	}
	if len(stats.TopClients) > 0 {
		fmt.Println("  top clients:")
		for _, c := range stats.TopClients {
			fmt.Printf("    %s <%s>  %d reservations, %.2f confirmed\n",
				c.ClientName, c.ClientEmail, c.ReservationsCount, c.RevenueConfirmed)
		}
	}
	return nil
}
