// Command notification_tail follows one member's notification stream from
// the terminal: it prints the recent backlog, then every realtime push as it
// lands. Handy for checking that fan-out actually reaches a given account.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lifewithchrist/community/internal/common"
	"lifewithchrist/community/internal/db"
	"lifewithchrist/community/internal/db/repositories"
	"lifewithchrist/community/internal/feeds"
	"lifewithchrist/community/internal/logging"
	models "lifewithchrist/community/internal/models/gorm"
	"lifewithchrist/community/internal/realtime"
)

func main() {
	userID := flag.String("user", "", "user id to follow")
	flag.Parse()

	if *userID == "" {
		log.Fatal("usage: notification_tail -user <user-id>")
	}

	if err := logging.Init("development"); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	gormDB, err := db.InitPostgresORM(db.PostgresDSN())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	notifications := repositories.NewNotificationRepository(gormDB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feed := feeds.NewNotificationFeed(func(ctx context.Context) ([]models.Notification, error) {
		return notifications.ListForUser(ctx, *userID)
	}, func(err error) {
		logging.Warn("Backlog fetch failed, tailing pushes only", "error", err.Error())
	})
	defer feed.Close()

	feed.Refresh(ctx)
	backlog, _ := feed.Snapshot()
	for i := len(backlog) - 1; i >= 0; i-- {
		printNotification(backlog[i])
	}
	seen := len(backlog)

	subscriber := realtime.NewSubscriber(common.NewRedisClient())
	sub, err := subscriber.Subscribe(ctx, *userID)
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	feed.Attach(sub)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Pushed notifications are prepended, so anything beyond the
			// last seen count sits at the front.
			items, _ := feed.Snapshot()
			for i := len(items) - seen - 1; i >= 0; i-- {
				printNotification(items[i])
			}
			seen = len(items)
		}
	}
}

func printNotification(n models.Notification) {
	fmt.Printf("%s  [%s] %s: %s\n", n.CreatedAt.Format(time.RFC3339), n.Type, n.Title, n.Message)
}
