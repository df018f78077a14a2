package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

const holdingsCSV = `family member name,broker name,sector code,stock code,invested amount,current value,transaction date,portfolio metrics code
e2e-member,Upstox,IT,INFY,10000,12000,2024-01-01,1.2
e2e-member,Groww,Energy,RELIANCE,8000,7000,2024-02-01,0.9
`

func baseURL() string {
	if u := os.Getenv("BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	// 1. Health Check
	checkEndpoint("GET", "/health", 200)

	// 2. Upload Dataset
	id := uploadDataset()
	fmt.Printf("Created Dataset ID: %s\n", id)

	// 3. List + Get
	checkEndpoint("GET", "/datasets", 200)
	checkEndpoint("GET", "/datasets/"+id, 200)

	// 4. Reports for every summary key
	for _, g := range []string{"member", "broker", "sector", "stock"} {
		checkEndpoint("GET", "/datasets/"+id+"/report?group="+g, 200)
	}
	checkEndpoint("GET", "/datasets/"+id+"/report?sector=Nothing", 200)
	checkEndpoint("GET", "/datasets/"+id+"/report?group=colour", 400)

	// 5. Options + Exports
	checkEndpoint("GET", "/datasets/"+id+"/options", 200)
	checkEndpoint("GET", "/datasets/"+id+"/export?table=summary&format=csv", 200)
	checkEndpoint("GET", "/datasets/"+id+"/export?table=detail&format=json", 200)

	// 6. Delete + verify
	checkEndpoint("DELETE", "/datasets/"+id, 200)
	checkEndpoint("GET", "/datasets/"+id, 404)

	fmt.Println("ALL TESTS PASSED")
}

func checkEndpoint(method, path string, expectedStatus int) {
	fmt.Printf("Testing %s %s...\n", method, path)
	req, _ := http.NewRequest(method, baseURL()+path, nil)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	fmt.Printf("Response: %s\n", string(respBody))
}

func uploadDataset() string {
	fmt.Println("Uploading dataset...")
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "e2e.csv")
	io.WriteString(fw, holdingsCSV)
	mw.WriteField("name", fmt.Sprintf("e2e-%d", time.Now().UnixNano()))
	mw.Close()

	resp, err := http.Post(baseURL()+"/datasets", mw.FormDataContentType(), &body)
	if err != nil {
		log.Fatalf("Upload failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 201 {
		b, _ := io.ReadAll(resp.Body)
		log.Fatalf("Upload failed with status %d: %s", resp.StatusCode, string(b))
	}

	var res map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&res)
	id, _ := res["dataset_id"].(string)
	return id
}
