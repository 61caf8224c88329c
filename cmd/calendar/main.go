// Command calendar renders the interactive month view of the activity
// portal to the terminal: the month grid, the selected day's agenda, and the
// upcoming list. It drives the same view model the browser calendar uses,
// against either the locally persisted event cache or a running portal
// server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/insativity/portal/internal/apiclient"
	"github.com/insativity/portal/internal/calendar"
	"github.com/insativity/portal/internal/localstore"
)

func main() {
	var (
		backend  = flag.String("backend", "local", "event backend: local or api")
		apiURL   = flag.String("api-url", "http://localhost:8080", "portal base URL for the api backend")
		cache    = flag.String("cache", defaultCachePath(), "path of the local event cache file")
		months   = flag.Int("months", 0, "months to move the view relative to today")
		day      = flag.Int("day", 0, "day of the viewed month to select")
		search   = flag.String("search", "", "filter the upcoming list")
		addTitle = flag.String("add", "", "create an event with this title on the selected day")
		addTime  = flag.String("time", "", "time of the created event (HH:MM)")
		addCat   = flag.String("category", "", "category of the created event")
		addClub  = flag.String("club", "", "club of the created event (api backend)")
	)
	flag.Parse()

	var source calendar.EventSource
	switch *backend {
	case "local":
		source = localstore.New(localstore.NewFileKV(*cache))
	case "api":
		source = apiclient.New(*apiURL, nil)
	default:
		log.Fatalf("unknown backend %q", *backend)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	vm := calendar.NewViewModel(source, nil)
	if err := vm.Refresh(ctx); err != nil {
		log.Fatalf("failed to load events: %v", err)
	}

	if *months != 0 {
		vm.GoToMonth(*months)
	}
	if *day > 0 {
		vm.SelectDay(vm.ViewYear, vm.ViewMonth, *day)
	}

	if *addTitle != "" {
		if vm.Selected == nil {
			log.Fatal("-add requires -day to pick a date")
		}
		date := calendar.DateString(vm.Selected.Year, vm.Selected.Month, vm.Selected.Day)
		created, err := vm.SubmitDraft(ctx, calendar.Draft{
			Title:    *addTitle,
			Date:     date,
			Time:     *addTime,
			Category: *addCat,
			Club:     *addClub,
		})
		if err != nil {
			log.Fatalf("failed to create event: %v", err)
		}
		fmt.Printf("created %q on %s\n\n", created.Title, created.Date)
	}

	printGrid(calendar.BuildGrid(vm))

	if vm.Selected != nil {
		printAgenda(calendar.AgendaFor(vm, vm.Selected.Year, vm.Selected.Month, vm.Selected.Day))
	}

	printUpcoming(calendar.BuildUpcoming(vm, *search))
}

func printGrid(grid calendar.Grid) {
	fmt.Printf("%s %s\n", grid.MonthLabel, grid.YearLabel)
	fmt.Println("  Su   Mo   Tu   We   Th   Fr   Sa")

	for i, cell := range grid.Cells {
		marker := " "
		switch {
		case cell.IsSelected:
			marker = "*"
		case cell.IsToday:
			marker = "!"
		case cell.HasEvents:
			marker = "."
		}
		if cell.Muted {
			fmt.Printf("  %2s ", "·")
		} else {
			fmt.Printf(" %2d%s ", cell.Day, marker)
		}
		if (i+1)%7 == 0 {
			fmt.Println()
		}
	}
	fmt.Println()
}

func printAgenda(agenda calendar.Agenda) {
	fmt.Println(agenda.Title)
	if agenda.Empty {
		fmt.Println("  No events scheduled.")
		fmt.Println()
		return
	}
	for _, item := range agenda.Items {
		line := fmt.Sprintf("  %s  %s", item.TimeLabel, item.Title)
		if item.LocationLabel != "" {
			line += "  " + item.LocationLabel
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func printUpcoming(list calendar.UpcomingList) {
	fmt.Println("Upcoming")
	if list.Placeholder != "" {
		fmt.Printf("  %s\n", list.Placeholder)
		return
	}
	for _, card := range list.Cards {
		fmt.Printf("  [%s] %s — %s", card.BadgeLabel, card.Title, card.DateLabel)
		if card.Time != "" {
			fmt.Printf(" %s", card.Time)
		}
		fmt.Println()
		if card.Summary != "" {
			fmt.Printf("      %s\n", strings.TrimSpace(card.Summary))
		}
	}
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "portal-events.json"
	}
	return home + string(os.PathSeparator) + ".portal-events.json"
}
