package report

// flowPageHTML is the interactive control-flow page. The cytoscape
// payload is injected over the /*__GRAPH_DATA__*/null placeholder.
const flowPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Control Flow: __FUNCTION_NAME__</title>
    <script src="https://unpkg.com/cytoscape@3.23.0/dist/cytoscape.min.js"></script>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            margin: 0;
            padding: 20px;
            background: #f5f5f5;
        }
        .header {
            background: #2c3e50;
            color: white;
            padding: 1rem;
            border-radius: 8px;
            margin-bottom: 20px;
        }
        .function-title {
            font-size: 1.5rem;
            font-weight: 600;
            margin: 0 0 0.5rem 0;
        }
        .function-meta {
            font-size: 0.9rem;
            opacity: 0.8;
        }
        .metrics {
            background: #ecf0f1;
            padding: 1rem;
            border-radius: 8px;
            margin-bottom: 20px;
        }
        .metrics h3 {
            margin: 0 0 0.5rem 0;
            color: #2c3e50;
        }
        .metric-item {
            display: inline-block;
            margin-right: 20px;
            margin-bottom: 10px;
        }
        #cy {
            width: 100%;
            height: 600px;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .controls {
            margin-top: 20px;
            text-align: center;
        }
        .controls button {
            background: #3498db;
            color: white;
            border: none;
            padding: 0.5rem 1rem;
            border-radius: 4px;
            cursor: pointer;
            margin: 0 5px;
        }
        .controls button:hover {
            background: #2980b9;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="function-title">__FUNCTION_NAME__</div>
        <div class="function-meta">__FUNCTION_META__</div>
    </div>

    <div class="metrics">
        <h3>Complexity Metrics</h3>
        <div class="metric-item"><strong>Cyclomatic:</strong> __CYCLOMATIC__</div>
        <div class="metric-item"><strong>Async:</strong> __ASYNC_SCORE__</div>
        <div class="metric-item"><strong>Error Handling:</strong> __ERROR_SCORE__</div>
        <div class="metric-item"><strong>Nodes:</strong> __NODE_COUNT__</div>
        <div class="metric-item"><strong>Edges:</strong> __EDGE_COUNT__</div>
    </div>

    <div id="cy"></div>

    <div class="controls">
        <button onclick="cy.fit()">Fit to View</button>
        <button onclick="cy.zoom(1); cy.center();">Reset Zoom</button>
        <button onclick="setLayout('breadthfirst')">Hierarchical</button>
        <button onclick="setLayout('circle')">Circle</button>
        <button onclick="setLayout('grid')">Grid</button>
    </div>

    <script>
        const graphData = /*__GRAPH_DATA__*/null;

        const nodeColors = {
            'entry': '#4CAF50',
            'exit': '#F44336',
            'statement': '#E3F2FD',
            'condition': '#FFF59D',
            'loop': '#FFECB3',
            'async_point': '#E1BEE7',
            'await_point': '#CE93D8',
            'spawn_point': '#BA68C8',
            'error_handler': '#FFCDD2',
            'state_transition': '#C8E6C9',
            'function_call': '#BBDEFB',
            'return_point': '#FFE0B2'
        };

        const edgeColors = {
            'control': '#34495e',
            'async': '#9b59b6',
            'error': '#e74c3c',
            'data': '#3498db'
        };

        const cy = cytoscape({
            container: document.getElementById('cy'),
            elements: graphData.nodes.concat(graphData.edges),

            style: [
                {
                    selector: 'node',
                    style: {
                        'content': 'data(label)',
                        'text-wrap': 'wrap',
                        'text-max-width': '120px',
                        'font-size': '10px',
                        'text-valign': 'center',
                        'text-halign': 'center',
                        'background-color': function(ele) {
                            return nodeColors[ele.data('type')] || '#E0E0E0';
                        },
                        'border-width': 2,
                        'border-color': '#34495e',
                        'width': 60,
                        'height': 40,
                        'shape': function(ele) {
                            const nodeType = ele.data('type');
                            if (nodeType === 'condition') return 'diamond';
                            if (nodeType === 'entry' || nodeType === 'exit') return 'round-rectangle';
                            return 'rectangle';
                        }
                    }
                },
                {
                    selector: 'edge',
                    style: {
                        'width': 2,
                        'line-color': function(ele) {
                            return edgeColors[ele.data('edge_type')] || '#34495e';
                        },
                        'target-arrow-color': function(ele) {
                            return edgeColors[ele.data('edge_type')] || '#34495e';
                        },
                        'target-arrow-shape': 'triangle',
                        'curve-style': 'bezier'
                    }
                }
            ],

            layout: {
                name: 'breadthfirst',
                directed: true,
                padding: 30
            }
        });

        function setLayout(layoutName) {
            const layouts = {
                'breadthfirst': { name: 'breadthfirst', directed: true, padding: 30 },
                'circle': { name: 'circle', padding: 30 },
                'grid': { name: 'grid', padding: 30 }
            };
            cy.layout(layouts[layoutName]).run();
        }

        cy.ready(function() {
            cy.fit();
        });
    </script>
</body>
</html>
`

// depsPageHTML is the interactive dependency page. The vis-network
// payload is injected over the /*__GRAPH_DATA__*/null placeholder.
const depsPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Dependency Graph Visualization</title>
    <script src="https://unpkg.com/vis-network@9.1.2/dist/vis-network.min.js"></script>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            margin: 0;
            padding: 20px;
            background: #f5f5f5;
        }
        .header {
            background: #2c3e50;
            color: white;
            padding: 1rem;
            border-radius: 8px;
            margin-bottom: 20px;
            text-align: center;
        }
        .title {
            font-size: 1.8rem;
            font-weight: 600;
            margin: 0 0 0.5rem 0;
        }
        .subtitle {
            font-size: 1rem;
            opacity: 0.8;
        }
        .stats {
            background: #ecf0f1;
            padding: 1rem;
            border-radius: 8px;
            margin-bottom: 20px;
            display: flex;
            justify-content: space-around;
            text-align: center;
        }
        .stat-item {
            flex: 1;
        }
        .stat-value {
            font-size: 1.5rem;
            font-weight: bold;
            color: #2c3e50;
        }
        .stat-label {
            font-size: 0.9rem;
            color: #7f8c8d;
        }
        #network {
            width: 100%;
            height: 600px;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .controls {
            margin-top: 20px;
            text-align: center;
        }
        .controls button {
            background: #3498db;
            color: white;
            border: none;
            padding: 0.5rem 1rem;
            border-radius: 4px;
            cursor: pointer;
            margin: 0 5px;
        }
        .controls button:hover {
            background: #2980b9;
        }
        .legend {
            margin-top: 20px;
            background: white;
            padding: 1rem;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .legend h3 {
            margin: 0 0 10px 0;
            color: #2c3e50;
        }
        .legend-item {
            display: inline-block;
            margin-right: 20px;
            margin-bottom: 10px;
        }
        .legend-color {
            display: inline-block;
            width: 16px;
            height: 16px;
            border-radius: 50%;
            margin-right: 8px;
            vertical-align: middle;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="title">Workspace Dependency Graph</div>
        <div class="subtitle">Interactive visualization of module dependencies</div>
    </div>

    <div class="stats">
        <div class="stat-item">
            <div class="stat-value">__MODULE_COUNT__</div>
            <div class="stat-label">Modules</div>
        </div>
        <div class="stat-item">
            <div class="stat-value">__DEPENDENCY_COUNT__</div>
            <div class="stat-label">Dependencies</div>
        </div>
        <div class="stat-item">
            <div class="stat-value">__AGENT_COUNT__</div>
            <div class="stat-label">Agents</div>
        </div>
        <div class="stat-item">
            <div class="stat-value">__CATEGORY_COUNT__</div>
            <div class="stat-label">Categories</div>
        </div>
    </div>

    <div id="network"></div>

    <div class="controls">
        <button onclick="network.fit()">Fit to View</button>
        <button onclick="resetZoom()">Reset Zoom</button>
        <button onclick="togglePhysics()">Toggle Physics</button>
        <button onclick="filterByCategory('core')">Show Core</button>
        <button onclick="filterByCategory('storage')">Show Storage</button>
        <button onclick="showAll()">Show All</button>
    </div>

    <div class="legend">
        <h3>Categories</h3>
        <div class="legend-item"><span class="legend-color" style="background: #FF6B6B;"></span><span>Core</span></div>
        <div class="legend-item"><span class="legend-color" style="background: #4ECDC4;"></span><span>Storage</span></div>
        <div class="legend-item"><span class="legend-color" style="background: #45B7D1;"></span><span>Security</span></div>
        <div class="legend-item"><span class="legend-color" style="background: #96CEB4;"></span><span>Runtime</span></div>
        <div class="legend-item"><span class="legend-color" style="background: #FFEAA7;"></span><span>Tools</span></div>
        <div class="legend-item"><span class="legend-color" style="background: #DDA0DD;"></span><span>LLM</span></div>
        <div class="legend-item"><span class="legend-color" style="background: #98D8C8;"></span><span>Consensus</span></div>
        <div class="legend-item"><span class="legend-color" style="background: #F7DC6F;"></span><span>Orchestration</span></div>
        <div class="legend-item"><span class="legend-color" style="background: #AED6F1;"></span><span>Messaging</span></div>
    </div>

    <script>
        const networkData = /*__GRAPH_DATA__*/null;

        const categoryColors = {
            'core': '#FF6B6B',
            'storage': '#4ECDC4',
            'security': '#45B7D1',
            'runtime': '#96CEB4',
            'tools': '#FFEAA7',
            'llm': '#DDA0DD',
            'consensus': '#98D8C8',
            'orchestration': '#F7DC6F',
            'messaging': '#AED6F1',
            'general': '#D5DBDB'
        };

        function makeNodes(list) {
            return list.map(function(node) {
                return {
                    id: node.id,
                    label: node.label,
                    color: {
                        background: categoryColors[node.category] || '#D5DBDB',
                        border: '#2c3e50',
                        highlight: {
                            background: '#e74c3c',
                            border: '#c0392b'
                        }
                    },
                    font: { size: 12, color: '#2c3e50' },
                    title: node.label + '\nCategory: ' + node.category +
                        '\nVersion: ' + node.version +
                        '\nWorkspace Deps: ' + node.workspace_deps +
                        '\nExternal Deps: ' + node.external_deps +
                        '\n\n' + node.description
                };
            });
        }

        function makeEdges(list) {
            return list.map(function(edge) {
                return {
                    from: edge.source,
                    to: edge.target,
                    arrows: 'to',
                    color: { color: '#7f8c8d', highlight: '#e74c3c' },
                    width: 2
                };
            });
        }

        const nodes = new vis.DataSet(makeNodes(networkData.nodes));
        const edges = new vis.DataSet(makeEdges(networkData.edges));

        const container = document.getElementById('network');
        const data = { nodes: nodes, edges: edges };

        const options = {
            physics: {
                enabled: true,
                stabilization: { iterations: 100 },
                barnesHut: {
                    gravitationalConstant: -8000,
                    centralGravity: 0.3,
                    springLength: 95,
                    springConstant: 0.04,
                    damping: 0.09
                }
            },
            nodes: {
                shape: 'dot',
                size: 20,
                borderWidth: 2,
                shadow: true
            },
            edges: {
                width: 2,
                shadow: true,
                smooth: { type: 'continuous' }
            },
            interaction: {
                hover: true,
                tooltipDelay: 200
            },
            layout: {
                improvedLayout: true
            }
        };

        const network = new vis.Network(container, data, options);

        function resetZoom() {
            network.fit();
        }

        let physicsEnabled = true;
        function togglePhysics() {
            physicsEnabled = !physicsEnabled;
            network.setOptions({ physics: { enabled: physicsEnabled } });
        }

        function filterByCategory(category) {
            const filteredNodes = networkData.nodes.filter(function(node) {
                return node.category === category;
            });
            const nodeIds = filteredNodes.map(function(node) { return node.id; });
            const filteredEdges = networkData.edges.filter(function(edge) {
                return nodeIds.includes(edge.source) || nodeIds.includes(edge.target);
            });

            nodes.clear();
            edges.clear();
            nodes.add(makeNodes(filteredNodes));
            edges.add(makeEdges(filteredEdges));
        }

        function showAll() {
            nodes.clear();
            edges.clear();
            nodes.add(makeNodes(networkData.nodes));
            edges.add(makeEdges(networkData.edges));
        }

        network.on('stabilizationIterationsDone', function() {
            network.fit();
        });
    </script>
</body>
</html>
`

// summaryPageHTML is the Go html/template wrapping a rendered markdown
// summary as a standalone page.
const summaryPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            margin: 0;
            padding: 20px;
            background: #f5f5f5;
            color: #2c3e50;
        }
        article {
            max-width: 860px;
            margin: 0 auto;
            background: white;
            padding: 2rem;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        h1, h2, h3 {
            color: #2c3e50;
        }
        h1 {
            border-bottom: 2px solid #ecf0f1;
            padding-bottom: 0.5rem;
        }
        code {
            background: #ecf0f1;
            padding: 0.1rem 0.3rem;
            border-radius: 3px;
            font-size: 0.9em;
        }
        pre {
            background: #ecf0f1;
            padding: 1rem;
            border-radius: 8px;
            overflow-x: auto;
        }
        pre code {
            background: none;
            padding: 0;
        }
        li {
            margin-bottom: 0.25rem;
        }
    </style>
</head>
<body>
    <article>
{{.Content}}
    </article>
</body>
</html>
`
