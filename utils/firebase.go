package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseApp    *firebase.App
	FirebaseClient *messaging.Client
	firebaseOnce   sync.Once
	firebaseErr    error
)

// InitFirebase initializes the Firebase Admin SDK and FCM client once.
// Missing credentials disable push notifications instead of failing startup.
func InitFirebase() error {
	firebaseOnce.Do(func() {
		ctx := context.Background()

		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			credentialsPath = os.Getenv("FCM_CREDENTIALS_PATH")
		}
		if credentialsPath == "" {
			credentialsPath = "./serviceAccountKey.json"
		}

		projectID := os.Getenv("FIREBASE_PROJECT_ID")
		if projectID == "" {
			projectID = os.Getenv("FCM_PROJECT_ID")
		}

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Printf("⚠️ Firebase credentials file not found at %s, push notifications disabled", credentialsPath)
			firebaseErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}

		if projectID == "" {
			log.Println("⚠️ FIREBASE_PROJECT_ID not set, push notifications disabled")
			firebaseErr = fmt.Errorf("FIREBASE_PROJECT_ID is required for FCM")
			return
		}

		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID},
			option.WithCredentialsFile(credentialsPath))
		if err != nil {
			log.Printf("❌ Error initializing Firebase app: %v", err)
			firebaseErr = fmt.Errorf("firebase app initialization failed: %w", err)
			return
		}

		fcmClient, err := app.Messaging(ctx)
		if err != nil {
			log.Printf("❌ Error getting FCM client: %v", err)
			FirebaseApp = app
			firebaseErr = fmt.Errorf("FCM client initialization failed: %w", err)
			return
		}

		FirebaseApp = app
		FirebaseClient = fcmClient
		log.Printf("✅ FCM client initialized for project: %s", projectID)
	})

	return firebaseErr
}

// GetFCMClient returns the FCM client instance.
func GetFCMClient() *messaging.Client {
	return FirebaseClient
}

// IsFCMEnabled reports whether push notifications are available.
func IsFCMEnabled() bool {
	return FirebaseClient != nil
}
