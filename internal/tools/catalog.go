package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/li7hai26/torna-mcp/internal/torna"
)

var (
	stringItem = map[string]any{"type": "string"}
	objectItem = map[string]any{"type": "object"}
)

// Catalog returns every tool this server exposes, in registration order.
// Each entry owns its argument schema and payload construction.
func Catalog() []Spec {
	return []Spec{
		{
			Name:        "torna_push_document",
			Title:       "Push Document to Torna",
			Description: "Push a document to Torna platform.",
			Options: []mcp.ToolOption{
				mcp.WithString("name", mcp.Required(), mcp.Description("Document name"), mcp.MinLength(1), mcp.MaxLength(100)),
				mcp.WithString("description", mcp.Description("Document description")),
				mcp.WithString("url", mcp.Required(), mcp.Description("API endpoint URL (e.g., '/api/users')")),
				mcp.WithString("http_method", mcp.Description("HTTP method"), mcp.Enum("GET", "POST", "PUT", "DELETE", "PATCH"), mcp.DefaultString("GET")),
				mcp.WithString("content_type", mcp.Description("Content type"), mcp.DefaultString("application/json")),
				mcp.WithBoolean("is_folder", mcp.Description("Whether this is a folder/category"), mcp.DefaultBool(false)),
				mcp.WithString("parent_id", mcp.Description("Parent category ID")),
				mcp.WithBoolean("is_show", mcp.Description("Whether to show this document"), mcp.DefaultBool(true)),
				mcp.WithArray("request_params", mcp.Description("Request parameters"), mcp.Items(objectItem)),
				mcp.WithArray("header_params", mcp.Description("Header parameters"), mcp.Items(objectItem)),
				mcp.WithArray("path_params", mcp.Description("Path parameters"), mcp.Items(objectItem)),
				mcp.WithArray("query_params", mcp.Description("Query parameters"), mcp.Items(objectItem)),
				mcp.WithArray("response_params", mcp.Description("Response parameters"), mcp.Items(objectItem)),
				mcp.WithArray("error_codes", mcp.Description("Error codes"), mcp.Items(objectItem)),
				mcp.WithString("debug_env_name", mcp.Description("Debug environment name")),
				mcp.WithString("debug_env_url", mcp.Description("Debug environment URL")),
			},
			Build: buildDocPush,
		},
		{
			Name:        "torna_create_category",
			Title:       "Create Document Category",
			Description: "Create a new document category in Torna.",
			Options: []mcp.ToolOption{
				mcp.WithString("name", mcp.Required(), mcp.Description("Category name"), mcp.MinLength(1), mcp.MaxLength(100)),
				mcp.WithString("parent_id", mcp.Description("Parent category ID")),
				mcp.WithString("description", mcp.Description("Category description")),
			},
			Build: buildCategoryCreate,
		},
		{
			Name:        "torna_update_category_name",
			Title:       "Update Category Name",
			Description: "Update the name of an existing category in Torna.",
			Idempotent:  true,
			Options: []mcp.ToolOption{
				mcp.WithString("category_id", mcp.Required(), mcp.Description("Category ID to update")),
				mcp.WithString("name", mcp.Required(), mcp.Description("New category name"), mcp.MinLength(1), mcp.MaxLength(100)),
			},
			Build: buildCategoryNameUpdate,
		},
		{
			Name:        "torna_list_documents",
			Title:       "List Documents",
			Description: "List documents in Torna with pagination support.",
			ReadOnly:    true,
			Idempotent:  true,
			Options:     paginationOptions(),
			Build:       buildDocList,
		},
		{
			Name:        "torna_get_document_detail",
			Title:       "Get Document Detail",
			Description: "Get detailed information about a specific document in Torna.",
			ReadOnly:    true,
			Idempotent:  true,
			Options: []mcp.ToolOption{
				mcp.WithString("doc_id", mcp.Required(), mcp.Description("Document ID to retrieve")),
			},
			Build: buildDocDetail,
		},
		{
			Name:        "torna_get_document_details_batch",
			Title:       "Get Document Details (Batch)",
			Description: "Get detailed information about multiple documents in Torna (batch operation).",
			ReadOnly:    true,
			Idempotent:  true,
			Options: []mcp.ToolOption{
				mcp.WithArray("doc_ids", mcp.Required(), mcp.Description("List of document IDs to retrieve"), mcp.MinItems(1), mcp.MaxItems(50), mcp.Items(stringItem)),
			},
			Build: buildDocDetails,
		},
		{
			Name:        "torna_create_dictionary",
			Title:       "Create Dictionary",
			Description: "Create a new dictionary in Torna.",
			Options: []mcp.ToolOption{
				mcp.WithString("name", mcp.Required(), mcp.Description("Dictionary name"), mcp.MinLength(1), mcp.MaxLength(100)),
				mcp.WithString("description", mcp.Description("Dictionary description")),
			},
			Build: buildDictCreate,
		},
		{
			Name:        "torna_update_dictionary",
			Title:       "Update Dictionary",
			Description: "Update an existing dictionary in Torna.",
			Options: []mcp.ToolOption{
				mcp.WithString("dict_id", mcp.Required(), mcp.Description("Dictionary ID to update")),
				mcp.WithString("name", mcp.Description("New dictionary name"), mcp.MinLength(1), mcp.MaxLength(100)),
				mcp.WithString("description", mcp.Description("New dictionary description")),
			},
			Build: buildDictUpdate,
		},
		{
			Name:        "torna_list_dictionaries",
			Title:       "List Dictionaries",
			Description: "List dictionaries in Torna with pagination support.",
			ReadOnly:    true,
			Idempotent:  true,
			Options:     paginationOptions(),
			Build:       buildDictList,
		},
		{
			Name:        "torna_get_dictionary_detail",
			Title:       "Get Dictionary Detail",
			Description: "Get detailed information about a specific dictionary in Torna.",
			ReadOnly:    true,
			Idempotent:  true,
			Options: []mcp.ToolOption{
				mcp.WithString("dict_id", mcp.Required(), mcp.Description("Dictionary ID to retrieve")),
			},
			Build: buildDictDetail,
		},
		{
			Name:        "torna_delete_dictionary",
			Title:       "Delete Dictionary",
			Description: "Delete a dictionary from Torna.",
			Destructive: true,
			Idempotent:  true,
			Options: []mcp.ToolOption{
				mcp.WithString("dict_id", mcp.Required(), mcp.Description("Dictionary ID to delete")),
			},
			Build: buildDictDelete,
		},
		{
			Name:        "torna_create_module",
			Title:       "Create Module",
			Description: "Create a new module in Torna.",
			Options: []mcp.ToolOption{
				mcp.WithString("name", mcp.Required(), mcp.Description("Module name"), mcp.MinLength(1), mcp.MaxLength(100)),
				mcp.WithString("description", mcp.Description("Module description")),
				mcp.WithString("project_id", mcp.Required(), mcp.Description("Project ID to which the module belongs")),
			},
			Build: buildModuleCreate,
		},
		{
			Name:        "torna_update_module",
			Title:       "Update Module",
			Description: "Update an existing module in Torna.",
			Options: []mcp.ToolOption{
				mcp.WithString("module_id", mcp.Required(), mcp.Description("Module ID to update")),
				mcp.WithString("name", mcp.Description("New module name"), mcp.MinLength(1), mcp.MaxLength(100)),
				mcp.WithString("description", mcp.Description("New module description")),
			},
			Build: buildModuleUpdate,
		},
		{
			Name:        "torna_list_modules",
			Title:       "List Modules",
			Description: "List modules in Torna with pagination support.",
			ReadOnly:    true,
			Idempotent:  true,
			Options: append(
				[]mcp.ToolOption{
					mcp.WithString("project_id", mcp.Description("Project ID to filter modules")),
				},
				paginationOptions()...,
			),
			Build: buildModuleList,
		},
		{
			Name:        "torna_get_module_detail",
			Title:       "Get Module Detail",
			Description: "Get detailed information about a specific module in Torna.",
			ReadOnly:    true,
			Idempotent:  true,
			Options: []mcp.ToolOption{
				mcp.WithString("module_id", mcp.Required(), mcp.Description("Module ID to retrieve")),
			},
			Build: buildModuleDetail,
		},
		{
			Name:        "torna_delete_module",
			Title:       "Delete Module",
			Description: "Delete a module from Torna.",
			Destructive: true,
			Idempotent:  true,
			Options: []mcp.ToolOption{
				mcp.WithString("module_id", mcp.Required(), mcp.Description("Module ID to delete")),
			},
			Build: buildModuleDelete,
		},
		{
			Name:        "torna_list_categories",
			Title:       "List Categories from Torna",
			Description: "List document categories in Torna.",
			ReadOnly:    true,
			Idempotent:  true,
			Build:       buildCategoryList,
		},
		{
			Name:        "torna_get_module_info",
			Title:       "Get Module Information from Torna",
			Description: "Get information about the module the access token belongs to.",
			ReadOnly:    true,
			Idempotent:  true,
			Build:       buildModuleInfo,
		},
		{
			Name:        "torna_push_enum",
			Title:       "Push Enum to Torna",
			Description: "Push an enum definition to Torna.",
			Options: []mcp.ToolOption{
				mcp.WithString("name", mcp.Required(), mcp.Description("Enum name")),
				mcp.WithString("description", mcp.Description("Enum description")),
				mcp.WithArray("items", mcp.Description("Enum items"), mcp.Items(objectItem)),
			},
			Build: buildEnumPush,
		},
		{
			Name:        "torna_batch_push_enums",
			Title:       "Batch Push Enums to Torna",
			Description: "Push multiple enum definitions to Torna (batch operation).",
			Options: []mcp.ToolOption{
				mcp.WithArray("enums", mcp.Required(), mcp.Description("Enum definitions to push"), mcp.MinItems(1), mcp.Items(objectItem)),
			},
			Build: buildEnumBatchPush,
		},
		{
			Name:        "torna_set_debug_env",
			Title:       "Set Debug Environment in Torna",
			Description: "Set a debug environment on a Torna module.",
			Options: []mcp.ToolOption{
				mcp.WithString("name", mcp.Required(), mcp.Description("Debug environment name")),
				mcp.WithString("url", mcp.Required(), mcp.Description("Debug environment URL")),
			},
			Build: buildDebugEnvSet,
		},
		{
			Name:        "torna_delete_debug_env",
			Title:       "Delete Debug Environment from Torna",
			Description: "Delete a debug environment from a Torna module.",
			Destructive: true,
			Options: []mcp.ToolOption{
				mcp.WithString("name", mcp.Required(), mcp.Description("Debug environment name")),
			},
			Build: buildDebugEnvDelete,
		},
	}
}

func paginationOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("limit", mcp.Description("Maximum results to return"), mcp.DefaultNumber(20), mcp.Min(1), mcp.Max(100)),
		mcp.WithNumber("offset", mcp.Description("Number of results to skip for pagination"), mcp.DefaultNumber(0), mcp.Min(0)),
	}
}

func buildDocPush(args Args) (torna.Descriptor, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return torna.Descriptor{}, err
	}
	if err := nameLength("name", name); err != nil {
		return torna.Descriptor{}, err
	}
	docURL, err := requireString(args, "url")
	if err != nil {
		return torna.Descriptor{}, err
	}
	method, err := requireMethod(args)
	if err != nil {
		return torna.Descriptor{}, err
	}

	doc := map[string]any{
		"name":        name,
		"description": args.String("description", ""),
		"url":         docURL,
		"httpMethod":  method,
		"contentType": args.String("content_type", "application/json"),
		"isFolder":    args.Bool("is_folder", false),
		"isShow":      args.Bool("is_show", true),
	}

	if parent := args.String("parent_id", ""); parent != "" {
		doc["parentId"] = parent
	}

	for _, p := range []struct{ arg, key string }{
		{"request_params", "requestParams"},
		{"header_params", "headerParams"},
		{"path_params", "pathParams"},
		{"query_params", "queryParams"},
		{"response_params", "responseParams"},
		{"error_codes", "errorCodeParams"},
	} {
		items, err := optionalObjectList(args, p.arg)
		if err != nil {
			return torna.Descriptor{}, err
		}
		if len(items) > 0 {
			doc[p.key] = items
		}
	}

	// The debug environment rides along only when both halves are given
	envName := args.String("debug_env_name", "")
	envURL := args.String("debug_env_url", "")
	if envName != "" && envURL != "" {
		doc["debugEnv"] = map[string]any{
			"name": envName,
			"url":  envURL,
		}
	}

	return torna.NewDescriptor("doc.push", map[string]any{"apis": []any{doc}}), nil
}

func buildCategoryCreate(args Args) (torna.Descriptor, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return torna.Descriptor{}, err
	}
	if err := nameLength("name", name); err != nil {
		return torna.Descriptor{}, err
	}

	payload := map[string]any{
		"name":     name,
		"isFolder": true,
		"isShow":   true,
	}
	if parent := args.String("parent_id", ""); parent != "" {
		payload["parentId"] = parent
	}
	if desc := args.String("description", ""); desc != "" {
		payload["description"] = desc
	}
	return torna.NewDescriptor("doc.category.create", payload), nil
}

func buildCategoryNameUpdate(args Args) (torna.Descriptor, error) {
	id, err := requireString(args, "category_id")
	if err != nil {
		return torna.Descriptor{}, err
	}
	name, err := requireString(args, "name")
	if err != nil {
		return torna.Descriptor{}, err
	}
	if err := nameLength("name", name); err != nil {
		return torna.Descriptor{}, err
	}
	return torna.NewDescriptor("doc.category.name.update", map[string]any{
		"id":   id,
		"name": name,
	}), nil
}

func buildDocList(args Args) (torna.Descriptor, error) {
	limit, offset, err := pagination(args)
	if err != nil {
		return torna.Descriptor{}, err
	}
	return torna.NewDescriptor("doc.list", map[string]any{
		"limit":  limit,
		"offset": offset,
	}), nil
}

func buildDocDetail(args Args) (torna.Descriptor, error) {
	id, err := requireString(args, "doc_id")
	if err != nil {
		return torna.Descriptor{}, err
	}
	return torna.NewDescriptor("doc.detail", map[string]any{"id": id}), nil
}

func buildDocDetails(args Args) (torna.Descriptor, error) {
	v, ok := args["doc_ids"]
	if !ok || v == nil {
		return torna.Descriptor{}, fmt.Errorf("doc_ids is required")
	}
	ids, err := stringList("doc_ids", v)
	if err != nil {
		return torna.Descriptor{}, err
	}
	if len(ids) < 1 {
		return torna.Descriptor{}, fmt.Errorf("doc_ids must contain at least 1 item")
	}
	if len(ids) > 50 {
		return torna.Descriptor{}, fmt.Errorf("doc_ids must contain at most 50 items")
	}
	return torna.NewDescriptor("doc.details", map[string]any{"ids": ids}), nil
}

func buildDictCreate(args Args) (torna.Descriptor, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return torna.Descriptor{}, err
	}
	if err := nameLength("name", name); err != nil {
		return torna.Descriptor{}, err
	}

	payload := map[string]any{"name": name}
	if desc := args.String("description", ""); desc != "" {
		payload["description"] = desc
	}
	return torna.NewDescriptor("dict.create", payload), nil
}

func buildDictUpdate(args Args) (torna.Descriptor, error) {
	id, err := requireString(args, "dict_id")
	if err != nil {
		return torna.Descriptor{}, err
	}

	payload := map[string]any{"id": id}
	if args.Has("name") {
		name := args.String("name", "")
		if err := nameLength("name", name); err != nil {
			return torna.Descriptor{}, err
		}
		payload["name"] = name
	}
	if desc := args.String("description", ""); desc != "" {
		payload["description"] = desc
	}
	return torna.NewDescriptor("dict.update", payload), nil
}

func buildDictList(args Args) (torna.Descriptor, error) {
	limit, offset, err := pagination(args)
	if err != nil {
		return torna.Descriptor{}, err
	}
	return torna.NewDescriptor("dict.list", map[string]any{
		"limit":  limit,
		"offset": offset,
	}), nil
}

func buildDictDetail(args Args) (torna.Descriptor, error) {
	id, err := requireString(args, "dict_id")
	if err != nil {
		return torna.Descriptor{}, err
	}
	return torna.NewDescriptor("dict.detail", map[string]any{"id": id}), nil
}

func buildDictDelete(args Args) (torna.Descriptor, error) {
	id, err := requireString(args, "dict_id")
	if err != nil {
		return torna.Descriptor{}, err
	}
	return torna.NewDescriptor("dict.delete", map[string]any{"id": id}), nil
}

func buildModuleCreate(args Args) (torna.Descriptor, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return torna.Descriptor{}, err
	}
	if err := nameLength("name", name); err != nil {
		return torna.Descriptor{}, err
	}
	projectID, err := requireString(args, "project_id")
	if err != nil {
		return torna.Descriptor{}, err
	}

	payload := map[string]any{
		"name":      name,
		"projectId": projectID,
	}
	if desc := args.String("description", ""); desc != "" {
		payload["description"] = desc
	}
	return torna.NewDescriptor("module.create", payload), nil
}

func buildModuleUpdate(args Args) (torna.Descriptor, error) {
	id, err := requireString(args, "module_id")
	if err != nil {
		return torna.Descriptor{}, err
	}

	payload := map[string]any{"id": id}
	if args.Has("name") {
		name := args.String("name", "")
		if err := nameLength("name", name); err != nil {
			return torna.Descriptor{}, err
		}
		payload["name"] = name
	}
	if desc := args.String("description", ""); desc != "" {
		payload["description"] = desc
	}
	return torna.NewDescriptor("module.update", payload), nil
}

func buildModuleList(args Args) (torna.Descriptor, error) {
	limit, offset, err := pagination(args)
	if err != nil {
		return torna.Descriptor{}, err
	}
	payload := map[string]any{
		"limit":  limit,
		"offset": offset,
	}
	if projectID := args.String("project_id", ""); projectID != "" {
		payload["projectId"] = projectID
	}
	return torna.NewDescriptor("module.list", payload), nil
}

func buildModuleDetail(args Args) (torna.Descriptor, error) {
	id, err := requireString(args, "module_id")
	if err != nil {
		return torna.Descriptor{}, err
	}
	return torna.NewDescriptor("module.detail", map[string]any{"id": id}), nil
}

func buildModuleDelete(args Args) (torna.Descriptor, error) {
	id, err := requireString(args, "module_id")
	if err != nil {
		return torna.Descriptor{}, err
	}
	return torna.NewDescriptor("module.delete", map[string]any{"id": id}), nil
}

func buildCategoryList(args Args) (torna.Descriptor, error) {
	return torna.NewDescriptor("doc.category.list", map[string]any{}), nil
}

func buildModuleInfo(args Args) (torna.Descriptor, error) {
	return torna.NewDescriptor("module.get", map[string]any{}), nil
}

func buildEnumPush(args Args) (torna.Descriptor, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return torna.Descriptor{}, err
	}
	items, err := optionalObjectList(args, "items")
	if err != nil {
		return torna.Descriptor{}, err
	}
	if items == nil {
		items = []any{}
	}
	return torna.NewDescriptor("enum.push", map[string]any{
		"name":        name,
		"description": args.String("description", ""),
		"items":       items,
	}), nil
}

func buildEnumBatchPush(args Args) (torna.Descriptor, error) {
	v, ok := args["enums"]
	if !ok || v == nil {
		return torna.Descriptor{}, fmt.Errorf("enums is required")
	}
	enums, err := objectList("enums", v)
	if err != nil {
		return torna.Descriptor{}, err
	}
	if len(enums) < 1 {
		return torna.Descriptor{}, fmt.Errorf("enums must contain at least 1 item")
	}
	return torna.NewDescriptor("enum.batch.push", map[string]any{"enums": enums}), nil
}

func buildDebugEnvSet(args Args) (torna.Descriptor, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return torna.Descriptor{}, err
	}
	envURL, err := requireString(args, "url")
	if err != nil {
		return torna.Descriptor{}, err
	}
	return torna.NewDescriptor("module.debug.env.set", map[string]any{
		"name": name,
		"url":  envURL,
	}), nil
}

func buildDebugEnvDelete(args Args) (torna.Descriptor, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return torna.Descriptor{}, err
	}
	return torna.NewDescriptor("module.debug.env.delete", map[string]any{"name": name}), nil
}
